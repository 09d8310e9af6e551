// Package photo validates uploaded contact photos and stores them either
// inline as data URLs or in an S3 bucket.
package photo
