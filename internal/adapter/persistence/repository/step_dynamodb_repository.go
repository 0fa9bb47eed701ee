package repository

import (
	"context"
	"log"
	"strconv"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	stepsServiceIDIndex          = "service_id-index"
	stepsResponsableIDIndex      = "responsable_id-index"
	stepsTemplateCategoryIDIndex = "template_category_id-index"
)

// Index key attributes are omitted when empty: DynamoDB rejects empty
// strings in secondary index keys.
type stepItem struct {
	ID                 string `dynamodbav:"id"`
	Name               string `dynamodbav:"name"`
	Description        string `dynamodbav:"description,omitempty"`
	Observation        string `dynamodbav:"observation,omitempty"`
	ResponsableClient  string `dynamodbav:"responsable_client,omitempty"`
	ServiceID          string `dynamodbav:"service_id,omitempty"`
	CategoryID         string `dynamodbav:"category_id,omitempty"`
	TemplateCategoryID string `dynamodbav:"template_category_id,omitempty"`
	ResponsableID      *int64 `dynamodbav:"responsable_id,omitempty"`
	Status             string `dynamodbav:"status"`
	DatetimeStart      string `dynamodbav:"datetime_start,omitempty"`
	DatetimeConclusion string `dynamodbav:"datetime_conclusion,omitempty"`
	DatetimeExpiration string `dynamodbav:"datetime_expiration,omitempty"`
	ReasonCancellament string `dynamodbav:"reason_cancellament,omitempty"`
	CreatedAt          string `dynamodbav:"created_at"`
	UpdatedAt          string `dynamodbav:"updated_at"`
}

// StepDynamoRepository persists steps, both service steps and category
// templates, in one table.
//
// Table requirements:
//   - PK: id (string)
//   - GSI service_id-index: service_id (string)
//   - GSI responsable_id-index: responsable_id (number)
//   - GSI template_category_id-index: template_category_id (string), only set on templates

type StepDynamoRepository struct {
	ddb    DynamoAPI
	tables Tables
}

var _ interfaces.IStepRepository = (*StepDynamoRepository)(nil)

func NewStepDynamoRepository(ddb DynamoAPI, tables Tables) *StepDynamoRepository {
	return &StepDynamoRepository{ddb: ddb, tables: tables}
}

func (r *StepDynamoRepository) GetByID(ctx context.Context, id string) (entities.Step, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tables.Steps),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Step{}, err
	}
	if len(out.Item) == 0 {
		return entities.Step{}, nil
	}
	var it stepItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Step{}, err
	}
	return fromStepItem(it), nil
}

func (r *StepDynamoRepository) ListByServiceID(ctx context.Context, serviceID string) ([]entities.Step, error) {
	return r.queryIndex(ctx, stepsServiceIDIndex, "service_id", &types.AttributeValueMemberS{Value: serviceID})
}

func (r *StepDynamoRepository) ListByResponsable(ctx context.Context, userID int64) ([]entities.Step, error) {
	return r.queryIndex(ctx, stepsResponsableIDIndex, "responsable_id", &types.AttributeValueMemberN{Value: strconv.FormatInt(userID, 10)})
}

func (r *StepDynamoRepository) ListTemplatesByCategoryID(ctx context.Context, categoryID string) ([]entities.Step, error) {
	return r.queryIndex(ctx, stepsTemplateCategoryIDIndex, "template_category_id", &types.AttributeValueMemberS{Value: categoryID})
}

func (r *StepDynamoRepository) ListAll(ctx context.Context) ([]entities.Step, error) {
	items, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tables.Steps)})
	if err != nil {
		return nil, err
	}
	return unmarshalSteps(items)
}

func (r *StepDynamoRepository) UpdateNotes(ctx context.Context, step entities.Step) (entities.Step, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tables.Steps),
		Key:                 idKey(step.ID),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #observation = :observation, #responsable_client = :responsable_client, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":observation":        &types.AttributeValueMemberS{Value: step.Observation},
			":responsable_client": &types.AttributeValueMemberS{Value: step.ResponsableClient},
			":updated_at":         &types.AttributeValueMemberS{Value: formatTime(step.UpdatedAt)},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":                 "id",
			"#observation":        "observation",
			"#responsable_client": "responsable_client",
			"#updated_at":         "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalFailure(err) {
			return entities.Step{}, nil
		}
		return entities.Step{}, err
	}
	var it stepItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Step{}, err
	}
	return fromStepItem(it), nil
}

// CommitTransition writes the step only if it still has PreviousStatus, and
// the derived service only if it is still PENDING. Either both land or none.
func (r *StepDynamoRepository) CommitTransition(ctx context.Context, t interfaces.StepTransition) error {
	items := []types.TransactWriteItem{{Update: r.transitionUpdate(t)}}

	if t.Service != nil {
		items = append(items, types.TransactWriteItem{Update: &types.Update{
			TableName:           aws.String(r.tables.Services),
			Key:                 idKey(t.Service.ID),
			ConditionExpression: aws.String("attribute_exists(#id) AND #status = :expected"),
			UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":expected":   &types.AttributeValueMemberS{Value: string(entities.ServiceStatusPending)},
				":status":     &types.AttributeValueMemberS{Value: string(t.Service.Status)},
				":updated_at": &types.AttributeValueMemberS{Value: formatTime(t.Service.UpdatedAt)},
			},
			ExpressionAttributeNames: map[string]string{
				"#id":         "id",
				"#status":     "status",
				"#updated_at": "updated_at",
			},
		}})
	}

	if err := transact(ctx, r.ddb, items); err != nil {
		log.Printf("[step][dynamodb] commit transition failed step_id=%s err=%v", t.Step.ID, err)
		return err
	}
	return nil
}

func (r *StepDynamoRepository) transitionUpdate(t interfaces.StepTransition) *types.Update {
	st := t.Step
	set := "SET #status = :status, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":previous":   &types.AttributeValueMemberS{Value: string(t.PreviousStatus)},
		":status":     &types.AttributeValueMemberS{Value: string(st.Status)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(st.UpdatedAt)},
	}
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	if st.DatetimeStart != nil {
		set += ", #datetime_start = :datetime_start"
		vals[":datetime_start"] = &types.AttributeValueMemberS{Value: formatTimePtr(st.DatetimeStart)}
		names["#datetime_start"] = "datetime_start"
	}
	if st.DatetimeConclusion != nil {
		set += ", #datetime_conclusion = :datetime_conclusion"
		vals[":datetime_conclusion"] = &types.AttributeValueMemberS{Value: formatTimePtr(st.DatetimeConclusion)}
		names["#datetime_conclusion"] = "datetime_conclusion"
	}
	if st.ReasonCancellament != "" {
		set += ", #reason_cancellament = :reason_cancellament"
		vals[":reason_cancellament"] = &types.AttributeValueMemberS{Value: st.ReasonCancellament}
		names["#reason_cancellament"] = "reason_cancellament"
	}
	return &types.Update{
		TableName:                 aws.String(r.tables.Steps),
		Key:                       idKey(st.ID),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :previous"),
		UpdateExpression:          aws.String(set),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  names,
	}
}

// ClearResponsable removes responsable_id from every step of userID. Steps
// reassigned concurrently are skipped.
func (r *StepDynamoRepository) ClearResponsable(ctx context.Context, userID int64) (int, error) {
	steps, err := r.ListByResponsable(ctx, userID)
	if err != nil {
		return 0, err
	}
	uid := &types.AttributeValueMemberN{Value: strconv.FormatInt(userID, 10)}
	now := formatTime(timeNow())

	n := 0
	for _, st := range steps {
		_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:           aws.String(r.tables.Steps),
			Key:                 idKey(st.ID),
			ConditionExpression: aws.String("#responsable_id = :uid"),
			UpdateExpression:    aws.String("REMOVE #responsable_id SET #updated_at = :updated_at"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":uid":        uid,
				":updated_at": &types.AttributeValueMemberS{Value: now},
			},
			ExpressionAttributeNames: map[string]string{
				"#responsable_id": "responsable_id",
				"#updated_at":     "updated_at",
			},
		})
		if err != nil {
			if isConditionalFailure(err) {
				continue
			}
			return n, err
		}
		n++
	}
	return n, nil
}

func (r *StepDynamoRepository) queryIndex(ctx context.Context, index, attr string, value types.AttributeValue) ([]entities.Step, error) {
	items, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tables.Steps),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#k = :v"),
		ExpressionAttributeNames:  map[string]string{"#k": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": value},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalSteps(items)
}

func unmarshalSteps(items []map[string]types.AttributeValue) ([]entities.Step, error) {
	var its []stepItem
	if err := attributevalue.UnmarshalListOfMaps(items, &its); err != nil {
		return nil, err
	}
	steps := make([]entities.Step, 0, len(its))
	for _, it := range its {
		steps = append(steps, fromStepItem(it))
	}
	sortSteps(steps)
	return steps, nil
}

// stepPut inserts a new step; the id must not exist yet.
func stepPut(table string, st entities.Step) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(toStepItem(st))
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{Put: &types.Put{
		TableName:                aws.String(table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}}, nil
}

// stepDefinitionUpdate rewrites the definition fields of an existing step
// owned by ownerAttr = ownerID. Status and its timestamps are left alone.
func stepDefinitionUpdate(table, ownerAttr, ownerID string, st entities.Step) types.TransactWriteItem {
	set := "SET #name = :name, #description = :description, #observation = :observation, #responsable_client = :responsable_client, #updated_at = :updated_at"
	var remove []string
	vals := map[string]types.AttributeValue{
		":owner":              &types.AttributeValueMemberS{Value: ownerID},
		":name":               &types.AttributeValueMemberS{Value: st.Name},
		":description":        &types.AttributeValueMemberS{Value: st.Description},
		":observation":        &types.AttributeValueMemberS{Value: st.Observation},
		":responsable_client": &types.AttributeValueMemberS{Value: st.ResponsableClient},
		":updated_at":         &types.AttributeValueMemberS{Value: formatTime(st.UpdatedAt)},
	}
	names := map[string]string{
		"#id":                  "id",
		"#owner":               ownerAttr,
		"#name":                "name",
		"#description":         "description",
		"#observation":         "observation",
		"#responsable_client":  "responsable_client",
		"#updated_at":          "updated_at",
		"#responsable_id":      "responsable_id",
		"#datetime_expiration": "datetime_expiration",
	}
	if st.ResponsableID != nil {
		set += ", #responsable_id = :responsable_id"
		vals[":responsable_id"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(*st.ResponsableID, 10)}
	} else {
		remove = append(remove, "#responsable_id")
	}
	if st.DatetimeExpiration != nil {
		set += ", #datetime_expiration = :datetime_expiration"
		vals[":datetime_expiration"] = &types.AttributeValueMemberS{Value: formatTimePtr(st.DatetimeExpiration)}
	} else {
		remove = append(remove, "#datetime_expiration")
	}
	expr := set
	if len(remove) > 0 {
		expr += " REMOVE " + remove[0]
		for _, attr := range remove[1:] {
			expr += ", " + attr
		}
	}
	return types.TransactWriteItem{Update: &types.Update{
		TableName:                 aws.String(table),
		Key:                       idKey(st.ID),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #owner = :owner"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  names,
	}}
}

func stepDelete(table, ownerAttr, ownerID, id string) types.TransactWriteItem {
	return types.TransactWriteItem{Delete: &types.Delete{
		TableName:           aws.String(table),
		Key:                 idKey(id),
		ConditionExpression: aws.String("#owner = :owner"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		},
		ExpressionAttributeNames: map[string]string{"#owner": ownerAttr},
	}}
}

// stepChangeItems turns a reconciliation into transaction items.
func stepChangeItems(table, ownerAttr, ownerID string, changes interfaces.StepChanges) ([]types.TransactWriteItem, error) {
	items := make([]types.TransactWriteItem, 0, len(changes.Create)+len(changes.Update)+len(changes.Delete))
	for _, id := range changes.Delete {
		items = append(items, stepDelete(table, ownerAttr, ownerID, id))
	}
	for _, st := range changes.Update {
		items = append(items, stepDefinitionUpdate(table, ownerAttr, ownerID, st))
	}
	for _, st := range changes.Create {
		put, err := stepPut(table, st)
		if err != nil {
			return nil, err
		}
		items = append(items, put)
	}
	return items, nil
}

func toStepItem(st entities.Step) stepItem {
	it := stepItem{
		ID:                 st.ID,
		Name:               st.Name,
		Description:        st.Description,
		Observation:        st.Observation,
		ResponsableClient:  st.ResponsableClient,
		ServiceID:          st.ServiceID,
		CategoryID:         st.CategoryID,
		ResponsableID:      st.ResponsableID,
		Status:             string(st.Status),
		DatetimeStart:      formatTimePtr(st.DatetimeStart),
		DatetimeConclusion: formatTimePtr(st.DatetimeConclusion),
		DatetimeExpiration: formatTimePtr(st.DatetimeExpiration),
		ReasonCancellament: st.ReasonCancellament,
		CreatedAt:          formatTime(st.CreatedAt),
		UpdatedAt:          formatTime(st.UpdatedAt),
	}
	if st.IsTemplate() {
		it.TemplateCategoryID = st.CategoryID
	}
	return it
}

func fromStepItem(it stepItem) entities.Step {
	return entities.Step{
		ID:                 it.ID,
		Name:               it.Name,
		Description:        it.Description,
		Observation:        it.Observation,
		ResponsableClient:  it.ResponsableClient,
		ServiceID:          it.ServiceID,
		CategoryID:         it.CategoryID,
		ResponsableID:      it.ResponsableID,
		Status:             entities.StepStatus(it.Status),
		DatetimeStart:      parseTimePtr(it.DatetimeStart),
		DatetimeConclusion: parseTimePtr(it.DatetimeConclusion),
		DatetimeExpiration: parseTimePtr(it.DatetimeExpiration),
		ReasonCancellament: it.ReasonCancellament,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}
