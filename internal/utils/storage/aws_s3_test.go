package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetObjectKeyFromLink(t *testing.T) {
	s := &awsS3{bucket: "lemon", region: "eu-west-1"}

	assert.Equal(t, "menu-items/a.png", s.GetObjectKeyFromLink("https://lemon.s3.eu-west-1.amazonaws.com/menu-items/a.png"))
	assert.Equal(t, "", s.GetObjectKeyFromLink("https://other.example.com/a.png"))
}

func TestUnconfiguredStorage(t *testing.T) {
	s := &awsS3{}

	assert.ErrorIs(t, s.DeleteFile(context.Background(), "x"), ErrStorageNotConfigured)
	assert.Equal(t, "", s.GetObjectKeyFromLink("https://.s3..amazonaws.com/x"))
}
