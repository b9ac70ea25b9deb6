package leads

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/econova-solutions/lead-platform/pkg/logging"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// leadRecord is the DynamoDB shape of a Lead. Timestamps are stored as
// RFC3339Nano strings so they sort lexicographically.
type leadRecord struct {
	ID           string   `dynamodbav:"id"`
	Name         string   `dynamodbav:"name,omitempty"`
	Email        string   `dynamodbav:"email,omitempty"`
	Phone        string   `dynamodbav:"phone,omitempty"`
	Address      string   `dynamodbav:"address,omitempty"`
	PostalCode   string   `dynamodbav:"postalCode,omitempty"`
	ProjectTypes []string `dynamodbav:"projectTypes,omitempty"`
	Message      string   `dynamodbav:"message,omitempty"`
	Source       string   `dynamodbav:"source,omitempty"`
	UTMSource    string   `dynamodbav:"utmSource,omitempty"`
	UTMCampaign  string   `dynamodbav:"utmCampaign,omitempty"`
	Status       string   `dynamodbav:"status"`
	CreatedAt    string   `dynamodbav:"createdAt"`
}

// DynamoRepository persists leads to a DynamoDB table. It backs the
// serverless intake deployment, where no Postgres instance exists.
type DynamoRepository struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

// NewDynamoRepository builds a repository backed by the provided client.
func NewDynamoRepository(client dynamoAPI, tableName string, logger *logging.Logger) *DynamoRepository {
	if client == nil {
		panic("leads: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("leads: table name cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DynamoRepository{client: client, tableName: tableName, logger: logger}
}

// Create inserts a new lead item.
func (r *DynamoRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	req.Normalize()

	now := time.Now().UTC()
	record := leadRecord{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PostalCode:   req.PostalCode,
		ProjectTypes: req.ProjectTypes,
		Message:      req.Message,
		Source:       req.Source,
		UTMSource:    req.UTMSource,
		UTMCampaign:  req.UTMCampaign,
		Status:       string(StatusNew),
		CreatedAt:    now.Format(time.RFC3339Nano),
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("leads: failed to marshal lead: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("leads: failed to persist lead: %w", err)
	}

	return record.toLead()
}

// GetByID fetches a lead item by its key.
func (r *DynamoRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       leadKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("leads: failed to fetch lead: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrLeadNotFound
	}

	var record leadRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, fmt.Errorf("leads: failed to unmarshal lead: %w", err)
	}
	return record.toLead()
}

// List scans the table, filters on status server-side and sorts by
// creation time in memory. The table stays small enough that a scan is
// the pragmatic choice over a GSI.
func (r *DynamoRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if !filter.matchesAll() {
		input.FilterExpression = aws.String("#s = :status")
		input.ExpressionAttributeNames = map[string]string{"#s": "status"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: filter.Status},
		}
	}

	out := []*Lead{}
	for {
		page, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}

		var records []leadRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, fmt.Errorf("leads: failed to unmarshal scan page: %w", err)
		}
		for _, record := range records {
			lead, err := record.toLead()
			if err != nil {
				return nil, err
			}
			out = append(out, lead)
		}

		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}

	desc := filter.Sort != SortAsc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus sets the status attribute of an existing item.
func (r *DynamoRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      leadKey(id),
		UpdateExpression:         aws.String("SET #s = :status"),
		ConditionExpression:      aws.String("attribute_exists(id)"),
		ExpressionAttributeNames: map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	})
	if err != nil {
		var conditionErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionErr) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("leads: failed to update status: %w", err)
	}
	return nil
}

func leadKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func (rec leadRecord) toLead() (*Lead, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("leads: bad createdAt on item %s: %w", rec.ID, err)
	}
	projectTypes := rec.ProjectTypes
	if projectTypes == nil {
		projectTypes = []string{}
	}
	return &Lead{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		Phone:        rec.Phone,
		Address:      rec.Address,
		PostalCode:   rec.PostalCode,
		ProjectTypes: projectTypes,
		Message:      rec.Message,
		Source:       rec.Source,
		UTMSource:    rec.UTMSource,
		UTMCampaign:  rec.UTMCampaign,
		Status:       Status(rec.Status),
		CreatedAt:    createdAt,
	}, nil
}

var _ Repository = (*DynamoRepository)(nil)
