package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"code-assistant/internal/domain"
)

const (
	skPrefixCall = "CALL#"
	ttlDuration  = 7 * 24 * time.Hour
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Client writes interaction records to a DynamoDB table keyed by route.
type Client struct {
	api       dynamodbAPI
	tableName string
	now       func() time.Time
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName, now: time.Now}, nil
}

func routePK(route string) string {
	return "ROUTE#" + route
}

// callSK sorts chronologically within a route; the id keeps concurrent
// writes in the same instant distinct.
func callSK(ts time.Time, id string) string {
	return skPrefixCall + ts.UTC().Format(time.RFC3339Nano) + "#" + id
}

// RecordInteraction fills in keys, id, timestamp and TTL when absent and
// persists the record.
func (c *Client) RecordInteraction(ctx context.Context, in domain.Interaction) error {
	if strings.TrimSpace(in.Route) == "" {
		return errors.New("repository: RecordInteraction: route is required")
	}

	now := c.now().UTC()
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.PK == "" {
		in.PK = routePK(in.Route)
	}
	if in.SK == "" {
		in.SK = callSK(now, in.ID)
	}
	if in.CreatedAt == "" {
		in.CreatedAt = now.Format(time.RFC3339)
	}
	if in.TTL == 0 {
		in.TTL = now.Add(ttlDuration).Unix()
	}

	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                interactionItem(in),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return fmt.Errorf("repository: RecordInteraction: %w", err)
	}
	return nil
}

func interactionItem(in domain.Interaction) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"PK":            &types.AttributeValueMemberS{Value: in.PK},
		"SK":            &types.AttributeValueMemberS{Value: in.SK},
		"id":            &types.AttributeValueMemberS{Value: in.ID},
		"route":         &types.AttributeValueMemberS{Value: in.Route},
		"model":         &types.AttributeValueMemberS{Value: in.Model},
		"status":        &types.AttributeValueMemberS{Value: in.Status},
		"latencyMillis": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", in.LatencyMillis)},
		"createdAt":     &types.AttributeValueMemberS{Value: in.CreatedAt},
		"ttl":           &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", in.TTL)},
	}
	// Optional attributes stay absent so they can back a sparse index.
	if in.CorrelationID != "" {
		item["correlationId"] = &types.AttributeValueMemberS{Value: in.CorrelationID}
	}
	if in.ErrorCode != "" {
		item["errorCode"] = &types.AttributeValueMemberS{Value: in.ErrorCode}
	}
	return item
}
