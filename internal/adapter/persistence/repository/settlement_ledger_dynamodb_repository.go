package repository

import (
	"context"
	"errors"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultProcessedEventsTableName = "processed_settlement_events"

type processedEventItem struct {
	EventID     string `dynamodbav:"event_id"`
	EventType   string `dynamodbav:"event_type"`
	ProcessedAt string `dynamodbav:"processed_at"`
}

// SettlementLedgerDynamoRepository is the idempotency ledger for processor
// callbacks.
//
// Table requirements:
//   - PK: event_id (string)
//
// The conditional put is the uniqueness constraint: an event id is recorded
// at most once, and a duplicate surfaces as ErrEventAlreadyProcessed.

type SettlementLedgerDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISettlementLedger = (*SettlementLedgerDynamoRepository)(nil)

func NewSettlementLedgerDynamoRepository(ddb *dynamodb.Client) *SettlementLedgerDynamoRepository {
	return &SettlementLedgerDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROCESSED_EVENTS_TABLE", defaultProcessedEventsTableName),
	}
}

func (r *SettlementLedgerDynamoRepository) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"event_id": &types.AttributeValueMemberS{Value: eventID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	return len(out.Item) > 0, nil
}

func (r *SettlementLedgerDynamoRepository) Record(ctx context.Context, ev entities.ProcessedSettlementEvent) error {
	it := processedEventItem{
		EventID:     ev.EventID,
		EventType:   ev.EventType,
		ProcessedAt: ev.ProcessedAt.UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#event_id)"),
		ExpressionAttributeNames: map[string]string{
			"#event_id": "event_id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return interfaces.ErrEventAlreadyProcessed
		}
		return err
	}
	return nil
}
