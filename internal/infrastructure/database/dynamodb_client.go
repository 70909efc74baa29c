package database

import (
	"context"

	appconfig "descarga_masiva/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
)

// NewAWSConfig builds the shared SDK config.
//
// DynamoDB Local and MinIO do not validate credentials, but the SDK requires them,
// so the static pair from AWSConfig is always installed. When DYNAMODB_ENDPOINT is
// set, DynamoDB calls are routed there; other services keep the default resolver.
func NewAWSConfig(ctx context.Context, c appconfig.AWSConfig) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(creds),
	}

	if c.DynamoDBEndpoint != "" {
		endpoint := c.DynamoDBEndpoint
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "load aws config")
	}
	return cfg, nil
}

func ConnectDynamoDB(cfg aws.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg)
}

// ConnectS3 uses path-style addressing when a custom endpoint is configured,
// which is what MinIO and LocalStack expect.
func ConnectS3(cfg aws.Config, c appconfig.AWSConfig) *s3.Client {
	var opts []func(*s3.Options)
	if c.S3Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(c.S3Endpoint)
			o.UsePathStyle = true
		})
	}
	return s3.NewFromConfig(cfg, opts...)
}
