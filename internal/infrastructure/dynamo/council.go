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

// CouncilNoteRepo provides typed DynamoDB operations for the council_notes table.
type CouncilNoteRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCouncilNoteRepo(client *dynamodb.Client, tableName string) *CouncilNoteRepo {
	return &CouncilNoteRepo{client: client, tableName: tableName}
}

func (r *CouncilNoteRepo) Put(ctx context.Context, n *domain.CouncilNote) error {
	item, err := attributevalue.MarshalMap(n)
	if err != nil {
		return fmt.Errorf("marshal council note: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CouncilNoteRepo) Get(ctx context.Context, noteID string) (*domain.CouncilNote, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("note_id", noteID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("council note %s: %w", noteID, domain.ErrNotFound)
	}
	var n domain.CouncilNote
	if err := attributevalue.UnmarshalMap(out.Item, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *CouncilNoteRepo) List(ctx context.Context) ([]domain.CouncilNote, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var notes []domain.CouncilNote
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &notes); err != nil {
		return nil, err
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Date.After(notes[j].Date) })
	return notes, nil
}

func (r *CouncilNoteRepo) Update(ctx context.Context, noteID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("note_id", noteID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *CouncilNoteRepo) Delete(ctx context.Context, noteID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("note_id", noteID),
	})
	return err
}
