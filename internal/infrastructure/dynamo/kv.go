package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/gg-eng/portfolio-api/internal/domain"
)

// kvItem is the single-table layout backing the kv.Store contract.
// PK: kv_key. expires_at is a Unix timestamp used as the DynamoDB TTL
// attribute; zero means no expiry.
type kvItem struct {
	Key       string `dynamodbav:"kv_key"`
	Value     string `dynamodbav:"kv_value"`
	ExpiresAt int64  `dynamodbav:"expires_at,omitempty"`
}

// KVStore implements kv.Store on a DynamoDB table.
type KVStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewKVStore(client *dynamodb.Client, tableName string) *KVStore {
	return &KVStore{client: client, tableName: tableName}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("kv_key", key),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo get %q: %w", key, err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
	}
	var item kvItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal item %q: %w", key, err)
	}
	// DynamoDB TTL deletion can lag by up to 48h; treat expired-but-present
	// items as already gone.
	if item.ExpiresAt > 0 && item.ExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
	}
	return []byte(item.Value), nil
}

func (s *KVStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	item := kvItem{Key: key, Value: string(value)}
	if ttl > 0 {
		item.ExpiresAt = time.Now().Add(ttl).Unix()
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item %q: %w", key, err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamo put %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("kv_key", key),
	})
	if err != nil {
		return fmt.Errorf("dynamo delete %q: %w", key, err)
	}
	return nil
}

// List scans the table for keys under prefix. A full scan is acceptable at
// this table's size; at real scale this would need a maintained index.
func (s *KVStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(s.tableName),
			ProjectionExpression:      aws.String("kv_key"),
			FilterExpression:          aws.String("begins_with(kv_key, :p)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{":p": &types.AttributeValueMemberS{Value: prefix}},
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("dynamo scan prefix %q: %w", prefix, err)
		}
		for _, raw := range out.Items {
			var item kvItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("unmarshal scanned item: %w", err)
			}
			keys = append(keys, item.Key)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return keys, nil
}

// strKey builds a DynamoDB primary key map with a single string attribute.
func strKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}
