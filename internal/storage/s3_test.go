package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func testArtifact() *types.ExportArtifact {
	return &types.ExportArtifact{
		ID:          uuid.MustParse("4f2a1c3e-1111-2222-3333-444455556666"),
		Candidate:   "Ada Lovelace",
		Filename:    "ada-lovelace.tex",
		ContentType: "application/x-tex",
		Content:     []byte("resume"),
		Score:       70,
	}
}

func TestS3Sink_Store(t *testing.T) {
	client := &fakeS3{}
	sink := NewS3Sink(client, "resumes", "/exports/")

	location, err := sink.Store(context.Background(), testArtifact())

	require.NoError(t, err)
	assert.Equal(t, "s3://resumes/exports/4f2a1c3e-1111-2222-3333-444455556666/ada-lovelace.tex", location)
	require.NotNil(t, client.input)
	assert.Equal(t, "resumes", aws.ToString(client.input.Bucket))
	assert.Equal(t, "application/x-tex", aws.ToString(client.input.ContentType))
	assert.Equal(t, "70", client.input.Metadata["score"])
	assert.Equal(t, []byte("resume"), client.body)
}

func TestS3Sink_KeyIncludesOwner(t *testing.T) {
	sink := NewS3Sink(&fakeS3{}, "resumes", "")
	artifact := testArtifact()
	artifact.Owner = "user-1"

	assert.Equal(t, "user-1/4f2a1c3e-1111-2222-3333-444455556666/ada-lovelace.tex", sink.Key(artifact))
}

func TestS3Sink_StoreError(t *testing.T) {
	boom := errors.New("access denied")
	sink := NewS3Sink(&fakeS3{err: boom}, "resumes", "")

	_, err := sink.Store(context.Background(), testArtifact())

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bucket resumes")
	assert.Equal(t, "s3", sink.Name())
}

func TestNewS3SinkFromConfig(t *testing.T) {
	sink, err := NewS3SinkFromConfig(context.Background(), &config.S3Config{
		Bucket:    "resumes",
		Region:    "auto",
		Endpoint:  "https://example.r2.cloudflarestorage.com",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "resumes", sink.bucket)
	assert.IsType(t, &s3.Client{}, sink.client)
}
