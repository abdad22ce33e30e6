package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/quorumflow-api/internal/domain"
)

// ServiceRepo provides typed DynamoDB operations for the services table.
type ServiceRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewServiceRepo(client *dynamodb.Client, tableName string) *ServiceRepo {
	return &ServiceRepo{client: client, tableName: tableName}
}

func (r *ServiceRepo) Put(ctx context.Context, s *domain.Service) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal service: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ServiceRepo) Get(ctx context.Context, serviceID string) (*domain.Service, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("service_id", serviceID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("service %s: %w", serviceID, domain.ErrNotFound)
	}
	var s domain.Service
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var services []domain.Service
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &services); err != nil {
		return nil, err
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Date.After(services[j].Date) })
	return services, nil
}

func (r *ServiceRepo) Update(ctx context.Context, serviceID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("service_id", serviceID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *ServiceRepo) Delete(ctx context.Context, serviceID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("service_id", serviceID),
	})
	return err
}
