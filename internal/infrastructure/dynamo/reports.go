package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/quorumflow-api/internal/domain"
)

// ReportAnswersRepo provides typed DynamoDB operations for the report_answers
// table, keyed by calendar year.
type ReportAnswersRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewReportAnswersRepo(client *dynamodb.Client, tableName string) *ReportAnswersRepo {
	return &ReportAnswersRepo{client: client, tableName: tableName}
}

func (r *ReportAnswersRepo) Put(ctx context.Context, a *domain.ReportAnswers) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal report answers: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Get returns the answers for a year. A missing document yields six empty
// strings rather than an error so the report renders blanks for unanswered years.
func (r *ReportAnswersRepo) Get(ctx context.Context, year int) (*domain.ReportAnswers, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       numKey("year", year),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return &domain.ReportAnswers{Year: year}, nil
	}
	var a domain.ReportAnswers
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
