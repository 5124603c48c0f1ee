package aws

import (
	"os"

	awssdk "github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

const jsonContentType = "application/json"

type S3 struct {
	client s3iface.S3API
}

func NewS3(sess *session.Session) *S3 {
	return &S3{
		client: s3.New(sess),
	}
}

// PutFile uploads the JSON file at path to the bucket under key.
func (s *S3) PutFile(bucket, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "could not open %s", path)
	}
	defer f.Close()

	req := s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        f,
		ContentType: awssdk.String(jsonContentType),
	}
	if _, err := s.client.PutObject(&req); err != nil {
		return errors.Wrapf(err, "could not upload %s to s3://%s/%s", path, bucket, key)
	}

	return nil
}
