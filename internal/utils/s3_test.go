package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeyFromURL(t *testing.T) {
	S3Bucket = "assets"
	S3Region = "us-east-1"
	t.Cleanup(func() {
		S3Bucket = ""
		S3Region = ""
		CloudFrontURL = ""
	})

	CloudFrontURL = ""
	assert.Equal(t, "2024/01/abc.jpg",
		extractKeyFromURL("https://assets.s3.us-east-1.amazonaws.com/2024/01/abc.jpg"))

	CloudFrontURL = "https://cdn.example.com"
	assert.Equal(t, "2024/01/abc.jpg",
		extractKeyFromURL("https://cdn.example.com/2024/01/abc.jpg"))

	// Bucket-style URLs still resolve when CloudFront is configured.
	assert.Equal(t, "2024/01/abc.jpg",
		extractKeyFromURL("https://assets.s3.us-east-1.amazonaws.com/2024/01/abc.jpg"))
}
