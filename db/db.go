package db

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/pkg/errors"

	"github.com/ambersariya/tubechord/constants"
)

// Optional DynamoDB cache of resolved video metadata, keyed by URL.
// Callers treat every error as a cache miss; the cache must never fail
// the pipeline.

// Enabled reports whether a cache endpoint is configured.
func Enabled() bool {
	return constants.GetCacheEndpoint() != ""
}

func newClient() (*dynamodb.DynamoDB, error) {
	endpoint := constants.GetCacheEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating DynamoDB session")
	}
	return dynamodb.New(sess), nil
}

// GetVideoTitle returns the cached title for a video URL.
func GetVideoTitle(url string) (string, error) {
	client, err := newClient()
	if err != nil {
		return "", err
	}

	out, err := client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(constants.GetCacheTable()),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(url)},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "fetching cached title")
	}

	item, ok := out.Item["Title"]
	if !ok || item.S == nil {
		return "", errors.New("no cached title")
	}
	return *item.S, nil
}

// PutVideoTitle stores a resolved title for a video URL.
func PutVideoTitle(url string, title string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	_, err = client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(constants.GetCacheTable()),
		Item: map[string]*dynamodb.AttributeValue{
			"PK":    {S: aws.String(url)},
			"Title": {S: aws.String(title)},
		},
	})
	return errors.Wrap(err, "caching title")
}
