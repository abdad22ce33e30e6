package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/quorumflow-api/internal/domain"
)

// CompanionshipRepo provides typed DynamoDB operations for the companionships table.
// Families live embedded in the companionship document, mirroring how the
// ministering form edits them as one unit.
type CompanionshipRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCompanionshipRepo(client *dynamodb.Client, tableName string) *CompanionshipRepo {
	return &CompanionshipRepo{client: client, tableName: tableName}
}

func (r *CompanionshipRepo) Put(ctx context.Context, c *domain.Companionship) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal companionship: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CompanionshipRepo) Get(ctx context.Context, companionshipID string) (*domain.Companionship, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("companionship_id", companionshipID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("companionship %s: %w", companionshipID, domain.ErrNotFound)
	}
	var c domain.Companionship
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanionshipRepo) List(ctx context.Context) ([]domain.Companionship, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var companionships []domain.Companionship
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &companionships); err != nil {
		return nil, err
	}
	return companionships, nil
}

func (r *CompanionshipRepo) Update(ctx context.Context, companionshipID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("companionship_id", companionshipID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *CompanionshipRepo) Delete(ctx context.Context, companionshipID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("companionship_id", companionshipID),
	})
	return err
}
