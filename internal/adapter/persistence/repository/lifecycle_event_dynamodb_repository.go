package repository

import (
	"context"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultLifecycleEventsTableName = "enrollment_events"

type lifecycleEventItem struct {
	EnrollmentID string `dynamodbav:"enrollment_id"`
	ID           string `dynamodbav:"id"`
	EventType    string `dynamodbav:"event_type"`
	EventData    string `dynamodbav:"event_data,omitempty"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// LifecycleEventDynamoRepository persists the append-only audit trail.
//
// Table requirements:
//   - PK: enrollment_id (string)
//   - SK: id (string)
//
// Rows are write-once: the conditional put refuses to overwrite an existing
// sort key, and no update or delete path exists.

type LifecycleEventDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ILifecycleEventRepository = (*LifecycleEventDynamoRepository)(nil)

func NewLifecycleEventDynamoRepository(ddb *dynamodb.Client) *LifecycleEventDynamoRepository {
	return &LifecycleEventDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ENROLLMENT_EVENTS_TABLE", defaultLifecycleEventsTableName),
	}
}

func (r *LifecycleEventDynamoRepository) Append(ctx context.Context, ev entities.LifecycleEvent) (entities.LifecycleEvent, error) {
	it := lifecycleEventItem{
		EnrollmentID: ev.EnrollmentID,
		ID:           ev.ID,
		EventType:    ev.EventType,
		EventData:    string(ev.EventData),
		CreatedAt:    ev.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.LifecycleEvent{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.LifecycleEvent{}, err
	}
	return ev, nil
}

func (r *LifecycleEventDynamoRepository) ListByEnrollmentID(ctx context.Context, enrollmentID string) ([]entities.LifecycleEvent, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("enrollment_id = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: enrollmentID},
		},
	})
	if err != nil {
		return nil, err
	}

	events := make([]entities.LifecycleEvent, 0, len(out.Items))
	for _, raw := range out.Items {
		var it lifecycleEventItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		events = append(events, entities.LifecycleEvent{
			ID:           it.ID,
			EnrollmentID: it.EnrollmentID,
			EventType:    it.EventType,
			EventData:    []byte(it.EventData),
			CreatedAt:    parseTime(it.CreatedAt),
		})
	}
	return events, nil
}
