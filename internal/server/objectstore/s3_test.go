package objectstore

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreSeams(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := putObject
	origPresign := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		putObject = origPut
		presignGetObject = origPresign
	})
}

var testOptions = Options{
	Region:   "us-east-1",
	User:     "minioadmin",
	Password: "minioadmin",
	Endpoint: "http://127.0.0.1:9000",
}

func TestNewS3Store_AppliesOptions(t *testing.T) {
	restoreSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		require.NotNil(t, lo.Credentials)

		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minioadmin", creds.AccessKeyID)
		assert.Equal(t, "minioadmin", creds.SecretAccessKey)
		return aws.Config{}, nil
	}

	var got s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&got)
		}
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		require.NotNil(t, c)
		return &s3.PresignClient{}
	}

	store, err := NewS3Store(context.Background(), testOptions)
	require.NoError(t, err)
	require.NotNil(t, store)

	require.NotNil(t, got.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *got.BaseEndpoint)
	assert.True(t, got.UsePathStyle)
}

func TestNewS3Store_NoEndpoint(t *testing.T) {
	restoreSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	var got s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&got)
		}
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }

	opts := testOptions
	opts.Endpoint = ""
	_, err := NewS3Store(context.Background(), opts)
	require.NoError(t, err)
	assert.Nil(t, got.BaseEndpoint)
	assert.False(t, got.UsePathStyle)
}

func TestNewS3Store_LoadError(t *testing.T) {
	restoreSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	store, err := NewS3Store(context.Background(), testOptions)
	assert.Nil(t, store)
	assert.EqualError(t, err, "s3 config error: load-fail")
}

func TestS3Store_PutObject(t *testing.T) {
	restoreSeams(t)

	var captured *s3.PutObjectInput
	var body []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		captured = in
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		body = b
		return &s3.PutObjectOutput{}, nil
	}

	store := &S3Store{client: &s3.Client{}, presign: &s3.PresignClient{}}
	err := store.PutObject(context.Background(), "todos", "exports/a.json", []byte(`{"todos":[]}`), "application/json")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "todos", aws.ToString(captured.Bucket))
	assert.Equal(t, "exports/a.json", aws.ToString(captured.Key))
	assert.Equal(t, "application/json", aws.ToString(captured.ContentType))
	assert.Equal(t, int64(12), aws.ToInt64(captured.ContentLength))
	assert.Equal(t, `{"todos":[]}`, string(body))

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("bucket missing")
	}
	err = store.PutObject(context.Background(), "todos", "exports/a.json", nil, "application/json")
	assert.EqualError(t, err, "put object exports/a.json: bucket missing")
}

func TestS3Store_PresignGet(t *testing.T) {
	restoreSeams(t)

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		assert.Equal(t, "todos", aws.ToString(in.Bucket))
		assert.Equal(t, "exports/a.json", aws.ToString(in.Key))

		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		assert.Equal(t, 15*time.Minute, po.Expires)
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/todos/exports/a.json?X-Amz-Signature=abc"}, nil
	}

	store := &S3Store{client: &s3.Client{}, presign: &s3.PresignClient{}}
	url, err := store.PresignGet(context.Background(), "todos", "exports/a.json", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "X-Amz-Signature=abc")

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign-fail")
	}
	_, err = store.PresignGet(context.Background(), "todos", "exports/a.json", time.Minute)
	assert.EqualError(t, err, "presign get exports/a.json: sign-fail")
}

func TestS3Store_RealPresign(t *testing.T) {
	restoreSeams(t)

	store, err := NewS3Store(context.Background(), testOptions)
	require.NoError(t, err)

	url, err := store.PresignGet(context.Background(), "todos", "exports/2025/01/02/x.json", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "http://127.0.0.1:9000/todos/exports/2025/01/02/x.json")
	assert.Contains(t, url, "X-Amz-Expires=900")
}
