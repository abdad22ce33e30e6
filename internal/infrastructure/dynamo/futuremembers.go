package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/quorumflow-api/internal/domain"
)

// FutureMemberRepo provides typed DynamoDB operations for the future_members table.
type FutureMemberRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewFutureMemberRepo(client *dynamodb.Client, tableName string) *FutureMemberRepo {
	return &FutureMemberRepo{client: client, tableName: tableName}
}

func (r *FutureMemberRepo) Put(ctx context.Context, fm *domain.FutureMember) error {
	item, err := attributevalue.MarshalMap(fm)
	if err != nil {
		return fmt.Errorf("marshal future member: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *FutureMemberRepo) Get(ctx context.Context, futureMemberID string) (*domain.FutureMember, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("future_member_id", futureMemberID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("future member %s: %w", futureMemberID, domain.ErrNotFound)
	}
	var fm domain.FutureMember
	if err := attributevalue.UnmarshalMap(out.Item, &fm); err != nil {
		return nil, err
	}
	return &fm, nil
}

func (r *FutureMemberRepo) List(ctx context.Context) ([]domain.FutureMember, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var fms []domain.FutureMember
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &fms); err != nil {
		return nil, err
	}
	return fms, nil
}

func (r *FutureMemberRepo) Update(ctx context.Context, futureMemberID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("future_member_id", futureMemberID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *FutureMemberRepo) Delete(ctx context.Context, futureMemberID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("future_member_id", futureMemberID),
	})
	return err
}
