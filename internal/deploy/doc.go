// Package deploy uploads the built web side to a static hosting target.
// The only target implemented is S3: every file under web/dist is pushed
// with a content type derived from its extension so browsers render the
// site directly from the bucket.
package deploy
