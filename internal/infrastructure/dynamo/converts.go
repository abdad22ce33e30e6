package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/quorumflow-api/internal/domain"
)

// ConvertRepo provides typed DynamoDB operations for the converts table
// (manually recorded baptisms).
type ConvertRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewConvertRepo(client *dynamodb.Client, tableName string) *ConvertRepo {
	return &ConvertRepo{client: client, tableName: tableName}
}

func (r *ConvertRepo) Put(ctx context.Context, c *domain.Convert) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal convert: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ConvertRepo) Get(ctx context.Context, convertID string) (*domain.Convert, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("convert_id", convertID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("convert %s: %w", convertID, domain.ErrNotFound)
	}
	var c domain.Convert
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConvertRepo) List(ctx context.Context) ([]domain.Convert, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var converts []domain.Convert
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &converts); err != nil {
		return nil, err
	}
	return converts, nil
}

func (r *ConvertRepo) Update(ctx context.Context, convertID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("convert_id", convertID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *ConvertRepo) Delete(ctx context.Context, convertID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("convert_id", convertID),
	})
	return err
}
