package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/kanithisathvik/aspectrank/internal/clients"
)

const ANALYSIS_CACHE_TABLE_NAME = "AnalysisCache"

// analysisCacheItem is the table row shape. expires_at doubles as the
// DynamoDB-native TTL attribute; since native TTL deletion is lazy,
// reads check it themselves too.
type analysisCacheItem struct {
	CacheKey  string `dynamodbav:"cache_key"`
	Value     string `dynamodbav:"value"`
	ExpiresAt int64  `dynamodbav:"expires_at"`
}

// DynamoStore is the DynamoDB-backed key-value store for the analysis
// cache, used where a Valkey server is not part of the deployment.
type DynamoStore struct {
	client *dynamodb.Client
}

func NewDynamoStore() *DynamoStore {
	return &DynamoStore{client: clients.GetDynamoDBClient()}
}

func (s *DynamoStore) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ANALYSIS_CACHE_TABLE_NAME),
		Key: map[string]types.AttributeValue{
			"cache_key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("[DynamoDB] Failed to read cache item: %w", err)
	}
	if out.Item == nil {
		return "", false, nil
	}

	var item analysisCacheItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		slog.Error("[DynamoDB] Unable to unmarshal cache item",
			slog.String("error", err.Error()))
		return "", false, err
	}

	if item.ExpiresAt > 0 && time.Now().Unix() >= item.ExpiresAt {
		if err := s.Delete(ctx, key); err != nil {
			slog.Warn("[DynamoDB] Failed to delete expired cache item",
				slog.String("error", err.Error()))
		}
		return "", false, nil
	}

	return item.Value, true, nil
}

func (s *DynamoStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	item, err := attributevalue.MarshalMap(analysisCacheItem{
		CacheKey:  key,
		Value:     value,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal cache item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(ANALYSIS_CACHE_TABLE_NAME),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to write cache item: %w", err)
	}

	return nil
}

func (s *DynamoStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(ANALYSIS_CACHE_TABLE_NAME),
		Key: map[string]types.AttributeValue{
			"cache_key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to delete cache item: %w", err)
	}
	return nil
}
