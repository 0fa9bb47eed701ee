package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo records calls and answers from per-method hooks.
type fakeDynamo struct {
	DynamoAPI

	transact  func(*dynamodb.TransactWriteItemsInput) error
	batchGet  func(*dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error)
	getItem   func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	query     func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	update    func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	transacts []*dynamodb.TransactWriteItemsInput
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transacts = append(f.transacts, in)
	if f.transact != nil {
		if err := f.transact(in); err != nil {
			return nil, err
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func (f *fakeDynamo) BatchGetItem(_ context.Context, in *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	return f.batchGet(in)
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return f.getItem(in)
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return f.query(in)
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return f.update(in)
}

func TestCommitTransition_ConditionsAndAtomicity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	step := entities.Step{ID: "st-1", ServiceID: "svc-1", Status: entities.StepStatusInProgress, DatetimeStart: &now, UpdatedAt: now}

	t.Run("step and service in one transaction", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewStepDynamoRepository(ddb, DefaultTables())

		err := repo.CommitTransition(ctx, interfaces.StepTransition{
			Step:           step,
			PreviousStatus: entities.StepStatusPending,
			Service:        &entities.Service{ID: "svc-1", Status: entities.ServiceStatusInProgress, UpdatedAt: now},
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(ddb.transacts) != 1 || len(ddb.transacts[0].TransactItems) != 2 {
			t.Fatalf("expected one transaction with 2 items")
		}
		stepUpd := ddb.transacts[0].TransactItems[0].Update
		if aws.ToString(stepUpd.TableName) != "steps" || !strings.Contains(aws.ToString(stepUpd.ConditionExpression), "#status = :previous") {
			t.Fatalf("unexpected step update: %+v", stepUpd)
		}
		prev := stepUpd.ExpressionAttributeValues[":previous"].(*types.AttributeValueMemberS)
		if prev.Value != "PENDING" {
			t.Fatalf("expected PENDING precondition, got %s", prev.Value)
		}
		svcUpd := ddb.transacts[0].TransactItems[1].Update
		expected := svcUpd.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberS)
		if aws.ToString(svcUpd.TableName) != "services" || expected.Value != "PENDING" {
			t.Fatalf("unexpected service update: %+v", svcUpd)
		}
	})

	t.Run("cancelled transaction is a concurrent update", func(t *testing.T) {
		ddb := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) error {
			return &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
			}}
		}}
		repo := NewStepDynamoRepository(ddb, DefaultTables())

		err := repo.CommitTransition(ctx, interfaces.StepTransition{Step: step, PreviousStatus: entities.StepStatusPending})
		if !errors.Is(err, interfaces.ErrConcurrentUpdate) {
			t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		ddb := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) error { return errors.New("throttled") }}
		repo := NewStepDynamoRepository(ddb, DefaultTables())

		err := repo.CommitTransition(ctx, interfaces.StepTransition{Step: step, PreviousStatus: entities.StepStatusPending})
		if err == nil || err.Error() != "throttled" {
			t.Fatalf("expected throttled, got %v", err)
		}
	})
}

func TestServiceUpdate_ReconciliationItems(t *testing.T) {
	ctx := context.Background()
	ddb := &fakeDynamo{}
	repo := NewServiceDynamoRepository(ddb, DefaultTables())
	uid := int64(5)

	_, err := repo.Update(ctx, entities.Service{ID: "svc-1", Status: entities.ServiceStatusPending}, interfaces.StepChanges{
		Delete: []string{"st-old"},
		Update: []entities.Step{{ID: "st-1", Name: "Inspect", ServiceID: "svc-1", ResponsableID: &uid}},
		Create: []entities.Step{{ID: "st-new", Name: "Report", ServiceID: "svc-1"}},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	items := ddb.transacts[0].TransactItems
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	if items[0].Put == nil || items[1].Delete == nil || items[2].Update == nil || items[3].Put == nil {
		t.Fatalf("unexpected item kinds")
	}
	upd := aws.ToString(items[2].Update.UpdateExpression)
	if strings.Contains(upd, "#status") {
		t.Fatalf("definition update must not touch status: %s", upd)
	}
	if !strings.Contains(upd, "#responsable_id = :responsable_id") || !strings.Contains(upd, "REMOVE #datetime_expiration") {
		t.Fatalf("unexpected update expression: %s", upd)
	}
	owner := items[1].Delete.ExpressionAttributeValues[":owner"].(*types.AttributeValueMemberS)
	if owner.Value != "svc-1" {
		t.Fatalf("delete must be scoped to the service, got %s", owner.Value)
	}
}

func TestTransact_TooManyItems(t *testing.T) {
	ddb := &fakeDynamo{}
	items := make([]types.TransactWriteItem, maxTransactItems+1)
	if err := transact(context.Background(), ddb, items); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ddb.transacts) != 0 {
		t.Fatalf("nothing must be sent")
	}
}

func TestBatchGetByID_ChunksAndRetries(t *testing.T) {
	ids := make([]string, 0, 150)
	for i := 0; i < 150; i++ {
		ids = append(ids, "c-"+string(rune('A'+i%26))+time.Duration(i).String())
	}
	ids = append(ids, ids[0], "")

	calls := 0
	retried := false
	ddb := &fakeDynamo{batchGet: func(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
		calls++
		keys := in.RequestItems["clients"].Keys
		if len(keys) > maxBatchGetKeys {
			t.Fatalf("batch too large: %d", len(keys))
		}
		out := &dynamodb.BatchGetItemOutput{Responses: map[string][]map[string]types.AttributeValue{}}
		if !retried && len(keys) > 1 {
			retried = true
			out.Responses["clients"] = keys[:len(keys)-1]
			out.UnprocessedKeys = map[string]types.KeysAndAttributes{"clients": {Keys: keys[len(keys)-1:]}}
			return out, nil
		}
		out.Responses["clients"] = keys
		return out, nil
	}}

	items, err := batchGetByID(context.Background(), ddb, "clients", ids)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 150 {
		t.Fatalf("expected 150 distinct items, got %d", len(items))
	}
	if calls != 3 {
		t.Fatalf("expected 2 chunks plus one retry, got %d calls", calls)
	}
}

func TestChunk(t *testing.T) {
	got := chunk([]string{"a", "b", "c", "d", "e"}, 2)
	if len(got) != 3 || len(got[2]) != 1 {
		t.Fatalf("unexpected chunks: %v", got)
	}
	if chunk(nil, 2) != nil {
		t.Fatalf("expected no chunks")
	}
}

func TestServiceFilterExpression(t *testing.T) {
	if expr, _, _ := serviceFilterExpression(interfaces.ServiceFilter{}); expr != "" {
		t.Fatalf("expected no filter, got %q", expr)
	}
	expr, vals, names := serviceFilterExpression(interfaces.ServiceFilter{CategoryID: "cat-1", ClientID: "c-1"})
	if expr != "#category_id = :category_id AND #client_id = :client_id" {
		t.Fatalf("unexpected expression %q", expr)
	}
	if len(vals) != 2 || len(names) != 2 {
		t.Fatalf("unexpected placeholders: %v %v", vals, names)
	}
}

func TestStepItem_TemplateIndexAndOptionalKeys(t *testing.T) {
	tpl := toStepItem(entities.Step{ID: "tpl-1", CategoryID: "cat-1", Status: entities.StepStatusPending})
	if tpl.TemplateCategoryID != "cat-1" || tpl.ServiceID != "" {
		t.Fatalf("template must be indexed by category: %+v", tpl)
	}
	av, err := attributevalue.MarshalMap(tpl)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, k := range []string{"service_id", "responsable_id", "datetime_start"} {
		if _, ok := av[k]; ok {
			t.Fatalf("empty index key %s must be omitted", k)
		}
	}

	svcStep := toStepItem(entities.Step{ID: "st-1", ServiceID: "svc-1", CategoryID: "cat-1"})
	if svcStep.TemplateCategoryID != "" {
		t.Fatalf("service step must not be a template")
	}
}

func TestFormatTime_SortsLexicographically(t *testing.T) {
	a := formatTime(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	b := formatTime(time.Date(2026, 10, 1, 0, 0, 0, 500, time.UTC))
	c := formatTime(time.Date(2026, 10, 1, 0, 0, 1, 0, time.UTC))
	if !(a < b && b < c) {
		t.Fatalf("expected ordering %s < %s < %s", a, b, c)
	}
	if !parseTime(b).Equal(time.Date(2026, 10, 1, 0, 0, 0, 500, time.UTC)) {
		t.Fatalf("round trip lost precision: %s", b)
	}
}

func TestClearResponsable_SkipsReassigned(t *testing.T) {
	ctx := context.Background()
	av1, _ := attributevalue.MarshalMap(stepItem{ID: "st-1", ServiceID: "svc-1"})
	av2, _ := attributevalue.MarshalMap(stepItem{ID: "st-2", ServiceID: "svc-1"})
	ddb := &fakeDynamo{
		query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			if aws.ToString(in.IndexName) != stepsResponsableIDIndex {
				t.Fatalf("unexpected index %s", aws.ToString(in.IndexName))
			}
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{av1, av2}}, nil
		},
		update: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			if in.Key["id"].(*types.AttributeValueMemberS).Value == "st-2" {
				return nil, &types.ConditionalCheckFailedException{}
			}
			return &dynamodb.UpdateItemOutput{}, nil
		},
	}
	repo := NewStepDynamoRepository(ddb, DefaultTables())

	n, err := repo.ClearResponsable(ctx, 5)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 cleared, got %d err=%v", n, err)
	}
}

func TestClientGetByID_FlattenedAddress(t *testing.T) {
	av, _ := attributevalue.MarshalMap(clientItem{
		ID:   "c-1",
		Name: "Acme",
		Address: &addressItem{
			ID: "a-1", NeighborhoodID: "n-1", CityID: "city-9", CityName: "Campinas", StateID: "s-1", StateUF: "SP",
		},
	})
	ddb := &fakeDynamo{getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
		return &dynamodb.GetItemOutput{Item: av}, nil
	}}
	c, err := NewClientDynamoRepository(ddb, DefaultTables()).GetByID(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.CityID() != "city-9" || c.Address.Neighborhood.City.State.UF != "SP" {
		t.Fatalf("unexpected client: %+v", c)
	}
}
