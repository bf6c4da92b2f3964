package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultEnrollmentsTableName = "enrollments"
	enrollmentsTokenHashIndex   = "token_hash-index"
	activePointerPrefix         = "active#"
)

// activePointerItem reserves the single active-enrollment slot for one CRM
// record. It lives in the enrollments table under a prefixed id, and its
// conditional writes are the arbiter for concurrent creates.
type activePointerItem struct {
	ID           string `dynamodbav:"id"`
	EnrollmentID string `dynamodbav:"enrollment_id"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

func activePointerID(crmModule, crmRecordID string) string {
	return activePointerPrefix + crmModule + "#" + crmRecordID
}

type enrollmentItem struct {
	ID        string `dynamodbav:"id"`
	CRMModule string `dynamodbav:"crm_module"`
	CRMRecord string `dynamodbav:"crm_record_id"`

	PatientName  string `dynamodbav:"patient_name"`
	PatientEmail string `dynamodbav:"patient_email"`
	PatientPhone string `dynamodbav:"patient_phone,omitempty"`
	PatientID    string `dynamodbav:"patient_id,omitempty"`

	AmountMinor int64  `dynamodbav:"amount_minor"`
	Currency    string `dynamodbav:"currency"`

	TokenHash   string `dynamodbav:"token_hash"`
	TokenSuffix string `dynamodbav:"token_suffix"`

	TermsURL         string `dynamodbav:"terms_url,omitempty"`
	TermsVersion     string `dynamodbav:"terms_version,omitempty"`
	TermsContentHash string `dynamodbav:"terms_content_hash,omitempty"`
	PolicyID         string `dynamodbav:"policy_id,omitempty"`

	Status string `dynamodbav:"status"`

	CreatedAt       string `dynamodbav:"created_at"`
	ExpiresAt       string `dynamodbav:"expires_at"`
	OpenedAt        string `dynamodbav:"opened_at,omitempty"`
	TermsAcceptedAt string `dynamodbav:"terms_accepted_at,omitempty"`
	ProcessingAt    string `dynamodbav:"processing_at,omitempty"`
	PaidAt          string `dynamodbav:"paid_at,omitempty"`
	FailedAt        string `dynamodbav:"failed_at,omitempty"`
	ExpiredAt       string `dynamodbav:"expired_at,omitempty"`

	ConsentIP          string `dynamodbav:"consent_ip,omitempty"`
	ConsentUserAgent   string `dynamodbav:"consent_user_agent,omitempty"`
	SignatureBlobRef   string `dynamodbav:"signature_blob_ref,omitempty"`
	ConsentDocumentRef string `dynamodbav:"consent_document_ref,omitempty"`

	CheckoutSessionID   string `dynamodbav:"checkout_session_id,omitempty"`
	PaymentIntentID     string `dynamodbav:"payment_intent_id,omitempty"`
	ProcessorCustomerID string `dynamodbav:"processor_customer_id,omitempty"`
	PaymentMethodKind   string `dynamodbav:"payment_method_kind,omitempty"`
}

// EnrollmentDynamoRepository persists Enrollment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string); "active#<crm_module>#<crm_record_id>" ids hold the
//     per-record active-slot pointer items
//   - GSI: token_hash-index (PK: token_hash)
//
// Every transition method issues an UpdateItem with a ConditionExpression on
// the expected current status; ConditionalCheckFailedException is surfaced
// as a zero-value Enrollment with nil error so callers can treat guard
// misses as no-ops. Create and Regenerate claim the active-slot pointer in
// the same TransactWriteItems call as the row change, so the uniqueness of
// one payable link per CRM record is decided by the storage layer, not the
// read-then-write in the use case.
type EnrollmentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEnrollmentRepository = (*EnrollmentDynamoRepository)(nil)

func NewEnrollmentDynamoRepository(ddb *dynamodb.Client) *EnrollmentDynamoRepository {
	return &EnrollmentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ENROLLMENTS_TABLE", defaultEnrollmentsTableName),
	}
}

// Create inserts the enrollment row and claims the record's active slot in
// one transaction. The pointer condition is the arbiter: when two creates for
// the same CRM record race, exactly one claim succeeds and the loser gets
// ErrActiveEnrollmentExists. replaceActiveID permits taking over a slot whose
// holder is already terminal (a released pointer whose delete was lost).
func (r *EnrollmentDynamoRepository) Create(ctx context.Context, e entities.Enrollment, replaceActiveID string) (entities.Enrollment, error) {
	av, err := attributevalue.MarshalMap(toEnrollmentItem(e))
	if err != nil {
		return entities.Enrollment{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: r.activePointerPut(e, replaceActiveID)},
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			// Reason order follows TransactItems: [0] slot claim, [1] row insert.
			if len(canceled.CancellationReasons) > 0 &&
				aws.ToString(canceled.CancellationReasons[0].Code) == "ConditionalCheckFailed" {
				return entities.Enrollment{}, interfaces.ErrActiveEnrollmentExists
			}
		}
		return entities.Enrollment{}, err
	}
	return e, nil
}

// activePointerPut claims the record's active slot for enrollment e. An empty
// replaceActiveID requires a vacant slot; otherwise the slot may also be
// taken over from the named stale holder or re-claimed by e itself.
func (r *EnrollmentDynamoRepository) activePointerPut(e entities.Enrollment, replaceActiveID string) *types.Put {
	av, _ := attributevalue.MarshalMap(activePointerItem{
		ID:           activePointerID(e.CRMModule, e.CRMRecord),
		EnrollmentID: e.ID,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339Nano),
	})

	put := &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}
	if replaceActiveID != "" {
		put.ConditionExpression = aws.String("attribute_not_exists(#id) OR #enrollment_id IN (:stale, :self)")
		put.ExpressionAttributeNames["#enrollment_id"] = "enrollment_id"
		put.ExpressionAttributeValues = map[string]types.AttributeValue{
			":stale": &types.AttributeValueMemberS{Value: replaceActiveID},
			":self":  &types.AttributeValueMemberS{Value: e.ID},
		}
	}
	return put
}

func (r *EnrollmentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Enrollment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Enrollment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Enrollment{}, nil
	}

	var it enrollmentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Enrollment{}, err
	}
	return fromEnrollmentItem(it), nil
}

// GetByTokenHash resolves via the token_hash GSI, then re-reads the main row
// with a consistent read (the index itself is eventually consistent).
func (r *EnrollmentDynamoRepository) GetByTokenHash(ctx context.Context, tokenHash string) (entities.Enrollment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(enrollmentsTokenHashIndex),
		KeyConditionExpression: aws.String("token_hash = :th"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":th": &types.AttributeValueMemberS{Value: tokenHash},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Enrollment{}, err
	}
	if len(out.Items) == 0 {
		return entities.Enrollment{}, nil
	}

	var it enrollmentItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Enrollment{}, err
	}
	return r.GetByID(ctx, it.ID)
}

// FindActiveByCRMRecord resolves the record's active slot with a consistent
// read. The second return names the stale holder when the pointer survives
// its enrollment going terminal (a lost release); Create uses it to take the
// slot over conditionally.
func (r *EnrollmentDynamoRepository) FindActiveByCRMRecord(ctx context.Context, crmModule, crmRecordID string) (entities.Enrollment, string, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: activePointerID(crmModule, crmRecordID)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Enrollment{}, "", err
	}
	if len(out.Item) == 0 {
		return entities.Enrollment{}, "", nil
	}

	var ptr activePointerItem
	if err := attributevalue.UnmarshalMap(out.Item, &ptr); err != nil {
		return entities.Enrollment{}, "", err
	}

	e, err := r.GetByID(ctx, ptr.EnrollmentID)
	if err != nil {
		return entities.Enrollment{}, "", err
	}
	if e.ID == "" || e.Status.IsTerminal() {
		return entities.Enrollment{}, ptr.EnrollmentID, nil
	}
	return e, "", nil
}

func (r *EnrollmentDynamoRepository) MarkSent(ctx context.Context, id string) (entities.Enrollment, error) {
	return r.update(ctx, id, func(now string) updateSpec {
		return updateSpec{
			condition: "#status = :expected",
			expr:      "SET #status = :status",
			values: map[string]types.AttributeValue{
				":expected": statusValue(entities.StatusCreated),
				":status":   statusValue(entities.StatusSent),
			},
			names: map[string]string{"#status": "status"},
		}
	})
}

func (r *EnrollmentDynamoRepository) MarkOpened(ctx context.Context, id string) (entities.Enrollment, error) {
	return r.update(ctx, id, func(now string) updateSpec {
		return updateSpec{
			condition: "#status IN (:created, :sent)",
			expr:      "SET #status = :status, #opened_at = :now",
			values: map[string]types.AttributeValue{
				":created": statusValue(entities.StatusCreated),
				":sent":    statusValue(entities.StatusSent),
				":status":  statusValue(entities.StatusOpened),
				":now":     &types.AttributeValueMemberS{Value: now},
			},
			names: map[string]string{"#status": "status", "#opened_at": "opened_at"},
		}
	})
}

func (r *EnrollmentDynamoRepository) RecordConsent(ctx context.Context, id, consentIP, consentUserAgent, signatureBlobRef string) (entities.Enrollment, error) {
	return r.update(ctx, id, func(now string) updateSpec {
		return updateSpec{
			condition: "attribute_exists(#id) AND attribute_not_exists(#terms_accepted_at)",
			expr:      "SET #terms_accepted_at = :now, #consent_ip = :ip, #consent_user_agent = :ua, #signature_blob_ref = :sig",
			values: map[string]types.AttributeValue{
				":now": &types.AttributeValueMemberS{Value: now},
				":ip":  &types.AttributeValueMemberS{Value: consentIP},
				":ua":  &types.AttributeValueMemberS{Value: consentUserAgent},
				":sig": &types.AttributeValueMemberS{Value: signatureBlobRef},
			},
			names: map[string]string{
				"#terms_accepted_at":  "terms_accepted_at",
				"#consent_ip":         "consent_ip",
				"#consent_user_agent": "consent_user_agent",
				"#signature_blob_ref": "signature_blob_ref",
			},
		}
	})
}

func (r *EnrollmentDynamoRepository) AttachCheckoutSession(ctx context.Context, id, sessionID, customerID string) (entities.Enrollment, error) {
	return r.update(ctx, id, func(now string) updateSpec {
		return updateSpec{
			condition: "attribute_exists(#id)",
			expr:      "SET #checkout_session_id = :sid, #processor_customer_id = :cid",
			values: map[string]types.AttributeValue{
				":sid": &types.AttributeValueMemberS{Value: sessionID},
				":cid": &types.AttributeValueMemberS{Value: customerID},
			},
			names: map[string]string{
				"#checkout_session_id":   "checkout_session_id",
				"#processor_customer_id": "processor_customer_id",
			},
		}
	})
}

func (r *EnrollmentDynamoRepository) MarkProcessing(ctx context.Context, id, paymentIntentID string, kind entities.PaymentMethodKind) (entities.Enrollment, error) {
	return r.update(ctx, id, func(now string) updateSpec {
		return updateSpec{
			condition: "#status = :expected",
			expr:      "SET #status = :status, #processing_at = :now, #payment_intent_id = :pi, #payment_method_kind = :kind",
			values: map[string]types.AttributeValue{
				":expected": statusValue(entities.StatusOpened),
				":status":   statusValue(entities.StatusProcessing),
				":now":      &types.AttributeValueMemberS{Value: now},
				":pi":       &types.AttributeValueMemberS{Value: paymentIntentID},
				":kind":     &types.AttributeValueMemberS{Value: string(kind)},
			},
			names: map[string]string{
				"#status":              "status",
				"#processing_at":       "processing_at",
				"#payment_intent_id":   "payment_intent_id",
				"#payment_method_kind": "payment_method_kind",
			},
		}
	})
}

func (r *EnrollmentDynamoRepository) MarkPaid(ctx context.Context, id string, expected entities.EnrollmentStatus, paymentIntentID string, kind entities.PaymentMethodKind) (entities.Enrollment, error) {
	paid, err := r.update(ctx, id, func(now string) updateSpec {
		spec := updateSpec{
			condition: "#status = :expected",
			expr:      "SET #status = :status, #paid_at = :now, #payment_intent_id = :pi",
			values: map[string]types.AttributeValue{
				":expected": statusValue(expected),
				":status":   statusValue(entities.StatusPaid),
				":now":      &types.AttributeValueMemberS{Value: now},
				":pi":       &types.AttributeValueMemberS{Value: paymentIntentID},
			},
			names: map[string]string{
				"#status":            "status",
				"#paid_at":           "paid_at",
				"#payment_intent_id": "payment_intent_id",
			},
		}
		if kind != "" {
			spec.expr += ", #payment_method_kind = :kind"
			spec.values[":kind"] = &types.AttributeValueMemberS{Value: string(kind)}
			spec.names["#payment_method_kind"] = "payment_method_kind"
		}
		return spec
	})
	if err == nil && paid.ID != "" {
		r.releaseActive(ctx, paid)
	}
	return paid, err
}

func (r *EnrollmentDynamoRepository) MarkFailed(ctx context.Context, id string) (entities.Enrollment, error) {
	failed, err := r.update(ctx, id, func(now string) updateSpec {
		spec := updateSpec{
			expr: "SET #status = :status, #failed_at = :now",
			values: map[string]types.AttributeValue{
				":status": statusValue(entities.StatusFailed),
				":now":    &types.AttributeValueMemberS{Value: now},
			},
			names: map[string]string{"#status": "status", "#failed_at": "failed_at"},
		}
		spec.condition = statusInCondition(&spec,
			entities.StatusCreated, entities.StatusSent, entities.StatusOpened, entities.StatusProcessing)
		return spec
	})
	if err == nil && failed.ID != "" {
		r.releaseActive(ctx, failed)
	}
	return failed, err
}

func (r *EnrollmentDynamoRepository) MarkExpired(ctx context.Context, id string, expected ...entities.EnrollmentStatus) (entities.Enrollment, error) {
	expired, err := r.update(ctx, id, func(now string) updateSpec {
		spec := updateSpec{
			expr: "SET #status = :status, #expired_at = :now",
			values: map[string]types.AttributeValue{
				":status": statusValue(entities.StatusExpired),
				":now":    &types.AttributeValueMemberS{Value: now},
			},
			names: map[string]string{"#status": "status", "#expired_at": "expired_at"},
		}
		spec.condition = statusInCondition(&spec, expected...)
		return spec
	})
	if err == nil && expired.ID != "" {
		r.releaseActive(ctx, expired)
	}
	return expired, err
}

// releaseActive frees the record's active slot after a terminal transition.
// Best-effort: a lost delete leaves a stale pointer, which the next Create
// detects (the holder is terminal) and replaces conditionally.
func (r *EnrollmentDynamoRepository) releaseActive(ctx context.Context, e entities.Enrollment) {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: activePointerID(e.CRMModule, e.CRMRecord)},
		},
		// Only the current holder may release; a slot already claimed by a
		// newer enrollment stays put.
		ConditionExpression:      aws.String("#enrollment_id = :eid"),
		ExpressionAttributeNames: map[string]string{"#enrollment_id": "enrollment_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: e.ID},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return
		}
		log.Printf("[enrollment][repository] active slot release failed enrollment_id=%s err=%v", e.ID, err)
	}
}

func (r *EnrollmentDynamoRepository) SetConsentDocumentRef(ctx context.Context, id, ref string) (entities.Enrollment, error) {
	return r.update(ctx, id, func(now string) updateSpec {
		return updateSpec{
			condition: "attribute_exists(#id)",
			expr:      "SET #consent_document_ref = :ref",
			values: map[string]types.AttributeValue{
				":ref": &types.AttributeValueMemberS{Value: ref},
			},
			names: map[string]string{"#consent_document_ref": "consent_document_ref"},
		}
	})
}

// Regenerate atomically replaces the token, amount, policy snapshot and
// expiry and clears every downstream timestamp, consent field and processor
// correlation id. Lifecycle events and stored consent documents are
// untouched, so history survives across generations.
//
// The row update and the active-slot claim run in one transaction: reviving
// a terminal enrollment fails with ErrActiveEnrollmentExists when a newer
// enrollment for the same CRM record already holds the slot.
func (r *EnrollmentDynamoRepository) Regenerate(ctx context.Context, id string, params interfaces.RegenerateParams, expected ...entities.EnrollmentStatus) (entities.Enrollment, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return entities.Enrollment{}, err
	}
	if current.ID == "" {
		return entities.Enrollment{}, nil
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	spec := regenerateSpec(now, params, expected...)

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: r.activePointerPut(current, current.ID)},
			{Update: &types.Update{
				TableName: aws.String(r.tableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: id},
				},
				ConditionExpression:       aws.String("attribute_exists(#id) AND (" + spec.condition + ")"),
				UpdateExpression:          aws.String(spec.expr),
				ExpressionAttributeValues: spec.values,
				ExpressionAttributeNames:  mergeNames(spec.names, map[string]string{"#id": "id"}),
			}},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			// Reason order follows TransactItems: [0] slot claim, [1] row guard.
			if len(canceled.CancellationReasons) > 0 &&
				aws.ToString(canceled.CancellationReasons[0].Code) == "ConditionalCheckFailed" {
				return entities.Enrollment{}, interfaces.ErrActiveEnrollmentExists
			}
			return entities.Enrollment{}, nil
		}
		return entities.Enrollment{}, err
	}
	return r.GetByID(ctx, id)
}

func regenerateSpec(now string, params interfaces.RegenerateParams, expected ...entities.EnrollmentStatus) updateSpec {
	spec := updateSpec{
		expr: "SET #status = :status, #token_hash = :th, #token_suffix = :ts, " +
			"#amount_minor = :amount, #currency = :currency, " +
			"#terms_url = :turl, #terms_version = :tver, #terms_content_hash = :thash, #policy_id = :pid, " +
			"#created_at = :now, #expires_at = :exp " +
			"REMOVE #opened_at, #terms_accepted_at, #processing_at, #paid_at, #failed_at, #expired_at, " +
			"#consent_ip, #consent_user_agent, #signature_blob_ref, #consent_document_ref, " +
			"#checkout_session_id, #payment_intent_id, #processor_customer_id, #payment_method_kind",
		values: map[string]types.AttributeValue{
			":status":   statusValue(entities.StatusCreated),
			":th":       &types.AttributeValueMemberS{Value: params.TokenHash},
			":ts":       &types.AttributeValueMemberS{Value: params.TokenSuffix},
			":amount":   &types.AttributeValueMemberN{Value: strconv.FormatInt(params.AmountMinor, 10)},
			":currency": &types.AttributeValueMemberS{Value: params.Currency},
			":turl":     &types.AttributeValueMemberS{Value: params.TermsURL},
			":tver":     &types.AttributeValueMemberS{Value: params.TermsVersion},
			":thash":    &types.AttributeValueMemberS{Value: params.TermsContentHash},
			":pid":      &types.AttributeValueMemberS{Value: params.PolicyID},
			":now":      &types.AttributeValueMemberS{Value: now},
			":exp":      &types.AttributeValueMemberS{Value: params.ExpiresAt.UTC().Format(time.RFC3339Nano)},
		},
		names: map[string]string{
			"#status":                "status",
			"#token_hash":            "token_hash",
			"#token_suffix":          "token_suffix",
			"#amount_minor":          "amount_minor",
			"#currency":              "currency",
			"#terms_url":             "terms_url",
			"#terms_version":         "terms_version",
			"#terms_content_hash":    "terms_content_hash",
			"#policy_id":             "policy_id",
			"#created_at":            "created_at",
			"#expires_at":            "expires_at",
			"#opened_at":             "opened_at",
			"#terms_accepted_at":     "terms_accepted_at",
			"#processing_at":         "processing_at",
			"#paid_at":               "paid_at",
			"#failed_at":             "failed_at",
			"#expired_at":            "expired_at",
			"#consent_ip":            "consent_ip",
			"#consent_user_agent":    "consent_user_agent",
			"#signature_blob_ref":    "signature_blob_ref",
			"#consent_document_ref":  "consent_document_ref",
			"#checkout_session_id":   "checkout_session_id",
			"#payment_intent_id":     "payment_intent_id",
			"#processor_customer_id": "processor_customer_id",
			"#payment_method_kind":   "payment_method_kind",
		},
	}
	spec.condition = statusInCondition(&spec, expected...)
	return spec
}

type updateSpec struct {
	condition string
	expr      string
	values    map[string]types.AttributeValue
	names     map[string]string
}

func (r *EnrollmentDynamoRepository) update(ctx context.Context, id string, build func(now string) updateSpec) (entities.Enrollment, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	spec := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND (" + spec.condition + ")"),
		UpdateExpression:          aws.String(spec.expr),
		ExpressionAttributeValues: spec.values,
		ExpressionAttributeNames:  mergeNames(spec.names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Enrollment{}, nil
		}
		return entities.Enrollment{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Enrollment{}, nil
	}
	var it enrollmentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Enrollment{}, err
	}
	return fromEnrollmentItem(it), nil
}

// statusInCondition appends :expN placeholders to the spec and returns a
// "#status IN (...)" condition over them.
func statusInCondition(spec *updateSpec, expected ...entities.EnrollmentStatus) string {
	cond := "#status IN ("
	for i, st := range expected {
		ph := fmt.Sprintf(":exp%d", i)
		if i > 0 {
			cond += ", "
		}
		cond += ph
		spec.values[ph] = statusValue(st)
	}
	spec.names["#status"] = "status"
	return cond + ")"
}

func statusValue(s entities.EnrollmentStatus) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: string(s)}
}

func toEnrollmentItem(e entities.Enrollment) enrollmentItem {
	return enrollmentItem{
		ID:                  e.ID,
		CRMModule:           e.CRMModule,
		CRMRecord:           e.CRMRecord,
		PatientName:         e.PatientName,
		PatientEmail:        e.PatientEmail,
		PatientPhone:        e.PatientPhone,
		PatientID:           e.PatientID,
		AmountMinor:         e.AmountMinor,
		Currency:            e.Currency,
		TokenHash:           e.TokenHash,
		TokenSuffix:         e.TokenSuffix,
		TermsURL:            e.TermsURL,
		TermsVersion:        e.TermsVersion,
		TermsContentHash:    e.TermsContentHash,
		PolicyID:            e.PolicyID,
		Status:              string(e.Status),
		CreatedAt:           timeToString(e.CreatedAt),
		ExpiresAt:           timeToString(e.ExpiresAt),
		OpenedAt:            timePtrToString(e.OpenedAt),
		TermsAcceptedAt:     timePtrToString(e.TermsAcceptedAt),
		ProcessingAt:        timePtrToString(e.ProcessingAt),
		PaidAt:              timePtrToString(e.PaidAt),
		FailedAt:            timePtrToString(e.FailedAt),
		ExpiredAt:           timePtrToString(e.ExpiredAt),
		ConsentIP:           e.ConsentIP,
		ConsentUserAgent:    e.ConsentUserAgent,
		SignatureBlobRef:    e.SignatureBlobRef,
		ConsentDocumentRef:  e.ConsentDocumentRef,
		CheckoutSessionID:   e.CheckoutSessionID,
		PaymentIntentID:     e.PaymentIntentID,
		ProcessorCustomerID: e.ProcessorCustomerID,
		PaymentMethodKind:   string(e.PaymentMethodKind),
	}
}

func fromEnrollmentItem(it enrollmentItem) entities.Enrollment {
	return entities.Enrollment{
		ID:                  it.ID,
		CRMModule:           it.CRMModule,
		CRMRecord:           it.CRMRecord,
		PatientName:         it.PatientName,
		PatientEmail:        it.PatientEmail,
		PatientPhone:        it.PatientPhone,
		PatientID:           it.PatientID,
		AmountMinor:         it.AmountMinor,
		Currency:            it.Currency,
		TokenHash:           it.TokenHash,
		TokenSuffix:         it.TokenSuffix,
		TermsURL:            it.TermsURL,
		TermsVersion:        it.TermsVersion,
		TermsContentHash:    it.TermsContentHash,
		PolicyID:            it.PolicyID,
		Status:              entities.EnrollmentStatus(it.Status),
		CreatedAt:           parseTime(it.CreatedAt),
		ExpiresAt:           parseTime(it.ExpiresAt),
		OpenedAt:            parseTimePtr(it.OpenedAt),
		TermsAcceptedAt:     parseTimePtr(it.TermsAcceptedAt),
		ProcessingAt:        parseTimePtr(it.ProcessingAt),
		PaidAt:              parseTimePtr(it.PaidAt),
		FailedAt:            parseTimePtr(it.FailedAt),
		ExpiredAt:           parseTimePtr(it.ExpiredAt),
		ConsentIP:           it.ConsentIP,
		ConsentUserAgent:    it.ConsentUserAgent,
		SignatureBlobRef:    it.SignatureBlobRef,
		ConsentDocumentRef:  it.ConsentDocumentRef,
		CheckoutSessionID:   it.CheckoutSessionID,
		PaymentIntentID:     it.PaymentIntentID,
		ProcessorCustomerID: it.ProcessorCustomerID,
		PaymentMethodKind:   entities.PaymentMethodKind(it.PaymentMethodKind),
	}
}
