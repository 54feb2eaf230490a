// Package httputil opens edge lists from remote URLs.
//
// [Client.Open] issues a GET request and streams the response body. Network
// errors and 5xx responses are retried with exponential backoff via [Retry];
// a 404 is reported as [ErrNotFound] and is never retried.
//
// Bodies compressed with gzip are detected by their magic bytes and
// decompressed transparently. [Decompress] applies the same detection to
// any reader, so local ".gz" files load the same way:
//
//	c := httputil.NewClient()
//	body, err := c.Open(ctx, "https://example.org/graphs/karate.txt.gz")
//	if err != nil {
//	    return err
//	}
//	defer body.Close()
package httputil
