package repository

import (
	"context"
	"log"
	"strings"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const servicesCategoryIDIndex = "category_id-index"

type serviceItem struct {
	ID                  string `dynamodbav:"id"`
	ClientID            string `dynamodbav:"client_id,omitempty"`
	CategoryID          string `dynamodbav:"category_id,omitempty"`
	ClientCopyMachineID string `dynamodbav:"client_copy_machine_id,omitempty"`
	Description         string `dynamodbav:"description,omitempty"`
	Status              string `dynamodbav:"status"`
	Priority            string `dynamodbav:"priority,omitempty"`
	ReasonCancellament  string `dynamodbav:"reason_cancellament,omitempty"`
	CreatedAt           string `dynamodbav:"created_at"`
	UpdatedAt           string `dynamodbav:"updated_at"`
}

// ServiceDynamoRepository persists services. Writes that touch steps run in a
// single transaction together with the service item.
//
// Table requirements:
//   - PK: id (string)
//   - GSI category_id-index: category_id (string)

type ServiceDynamoRepository struct {
	ddb    DynamoAPI
	tables Tables
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb DynamoAPI, tables Tables) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{ddb: ddb, tables: tables}
}

func (r *ServiceDynamoRepository) Create(ctx context.Context, s entities.Service, steps []entities.Step) (entities.Service, error) {
	av, err := attributevalue.MarshalMap(toServiceItem(s))
	if err != nil {
		return entities.Service{}, err
	}
	items := []types.TransactWriteItem{{Put: &types.Put{
		TableName:                aws.String(r.tables.Services),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}}}
	stepItems, err := stepChangeItems(r.tables.Steps, "service_id", s.ID, interfaces.StepChanges{Create: steps})
	if err != nil {
		return entities.Service{}, err
	}
	items = append(items, stepItems...)

	if err := transact(ctx, r.ddb, items); err != nil {
		log.Printf("[service][dynamodb] create failed service_id=%s err=%v", s.ID, err)
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tables.Services),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Service{}, err
	}
	if len(out.Item) == 0 {
		return entities.Service{}, nil
	}
	var it serviceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Service{}, err
	}
	return fromServiceItem(it), nil
}

func (r *ServiceDynamoRepository) List(ctx context.Context, filter interfaces.ServiceFilter) ([]entities.Service, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tables.Services)}
	if expr, vals, names := serviceFilterExpression(filter); expr != "" {
		in.FilterExpression = aws.String(expr)
		in.ExpressionAttributeValues = vals
		in.ExpressionAttributeNames = names
	}

	items, err := scanAll(ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	var its []serviceItem
	if err := attributevalue.UnmarshalListOfMaps(items, &its); err != nil {
		return nil, err
	}
	out := make([]entities.Service, 0, len(its))
	for _, it := range its {
		out = append(out, fromServiceItem(it))
	}
	return out, nil
}

// Update replaces the service item and applies the step reconciliation in
// the same transaction.
func (r *ServiceDynamoRepository) Update(ctx context.Context, s entities.Service, changes interfaces.StepChanges) (entities.Service, error) {
	av, err := attributevalue.MarshalMap(toServiceItem(s))
	if err != nil {
		return entities.Service{}, err
	}
	items := []types.TransactWriteItem{{Put: &types.Put{
		TableName:                aws.String(r.tables.Services),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}}}
	stepItems, err := stepChangeItems(r.tables.Steps, "service_id", s.ID, changes)
	if err != nil {
		return entities.Service{}, err
	}
	items = append(items, stepItems...)

	if err := transact(ctx, r.ddb, items); err != nil {
		log.Printf("[service][dynamodb] update failed service_id=%s err=%v", s.ID, err)
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceDynamoRepository) Delete(ctx context.Context, id string, stepIDs []string) error {
	items := []types.TransactWriteItem{{Delete: &types.Delete{
		TableName:                aws.String(r.tables.Services),
		Key:                      idKey(id),
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}}}
	for _, stepID := range stepIDs {
		items = append(items, stepDelete(r.tables.Steps, "service_id", id, stepID))
	}
	return transact(ctx, r.ddb, items)
}

func (r *ServiceDynamoRepository) CountByCategoryID(ctx context.Context, categoryID string) (int, error) {
	n := 0
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Services),
		IndexName:              aws.String(servicesCategoryIDIndex),
		KeyConditionExpression: aws.String("category_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: categoryID},
		},
		Select: types.SelectCount,
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		n += int(page.Count)
	}
	return n, nil
}

func serviceFilterExpression(f interfaces.ServiceFilter) (string, map[string]types.AttributeValue, map[string]string) {
	var conds []string
	vals := map[string]types.AttributeValue{}
	names := map[string]string{}
	add := func(attr, value string) {
		if value == "" {
			return
		}
		conds = append(conds, "#"+attr+" = :"+attr)
		vals[":"+attr] = &types.AttributeValueMemberS{Value: value}
		names["#"+attr] = attr
	}
	add("category_id", f.CategoryID)
	add("client_id", f.ClientID)
	add("client_copy_machine_id", f.ClientCopyMachineID)
	if len(conds) == 0 {
		return "", nil, nil
	}
	return strings.Join(conds, " AND "), vals, names
}

func toServiceItem(s entities.Service) serviceItem {
	return serviceItem{
		ID:                  s.ID,
		ClientID:            s.ClientID,
		CategoryID:          s.CategoryID,
		ClientCopyMachineID: s.ClientCopyMachineID,
		Description:         s.Description,
		Status:              string(s.Status),
		Priority:            s.Priority,
		ReasonCancellament:  s.ReasonCancellament,
		CreatedAt:           formatTime(s.CreatedAt),
		UpdatedAt:           formatTime(s.UpdatedAt),
	}
}

func fromServiceItem(it serviceItem) entities.Service {
	return entities.Service{
		ID:                  it.ID,
		ClientID:            it.ClientID,
		CategoryID:          it.CategoryID,
		ClientCopyMachineID: it.ClientCopyMachineID,
		Description:         it.Description,
		Status:              entities.ServiceStatus(it.Status),
		Priority:            it.Priority,
		ReasonCancellament:  it.ReasonCancellament,
		CreatedAt:           parseTime(it.CreatedAt),
		UpdatedAt:           parseTime(it.UpdatedAt),
	}
}
