package repository

import (
	"context"
	"log"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type categoryItem struct {
	ID          string `dynamodbav:"id"`
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// CategoryDynamoRepository persists categories. Step templates are kept in
// the steps table, keyed by template_category_id.
//
// Table requirements:
//   - PK: id (string)

type CategoryDynamoRepository struct {
	ddb    DynamoAPI
	tables Tables
}

var _ interfaces.ICategoryRepository = (*CategoryDynamoRepository)(nil)

func NewCategoryDynamoRepository(ddb DynamoAPI, tables Tables) *CategoryDynamoRepository {
	return &CategoryDynamoRepository{ddb: ddb, tables: tables}
}

func (r *CategoryDynamoRepository) Create(ctx context.Context, c entities.Category, templates []entities.Step) (entities.Category, error) {
	return r.write(ctx, c, "attribute_not_exists(#id)", interfaces.StepChanges{Create: templates})
}

func (r *CategoryDynamoRepository) GetByID(ctx context.Context, id string) (entities.Category, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tables.Categories),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Category{}, err
	}
	if len(out.Item) == 0 {
		return entities.Category{}, nil
	}
	var it categoryItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Category{}, err
	}
	return fromCategoryItem(it), nil
}

func (r *CategoryDynamoRepository) GetByIDs(ctx context.Context, ids []string) ([]entities.Category, error) {
	items, err := batchGetByID(ctx, r.ddb, r.tables.Categories, ids)
	if err != nil {
		return nil, err
	}
	return unmarshalCategories(items)
}

func (r *CategoryDynamoRepository) List(ctx context.Context) ([]entities.Category, error) {
	items, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tables.Categories)})
	if err != nil {
		return nil, err
	}
	return unmarshalCategories(items)
}

func (r *CategoryDynamoRepository) Update(ctx context.Context, c entities.Category, changes interfaces.StepChanges) (entities.Category, error) {
	return r.write(ctx, c, "attribute_exists(#id)", changes)
}

func (r *CategoryDynamoRepository) Delete(ctx context.Context, id string, templateIDs []string) error {
	items := []types.TransactWriteItem{{Delete: &types.Delete{
		TableName:                aws.String(r.tables.Categories),
		Key:                      idKey(id),
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}}}
	for _, tid := range templateIDs {
		items = append(items, stepDelete(r.tables.Steps, "template_category_id", id, tid))
	}
	return transact(ctx, r.ddb, items)
}

func (r *CategoryDynamoRepository) write(ctx context.Context, c entities.Category, cond string, changes interfaces.StepChanges) (entities.Category, error) {
	av, err := attributevalue.MarshalMap(categoryItem{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	})
	if err != nil {
		return entities.Category{}, err
	}
	items := []types.TransactWriteItem{{Put: &types.Put{
		TableName:                aws.String(r.tables.Categories),
		Item:                     av,
		ConditionExpression:      aws.String(cond),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}}}
	templateItems, err := stepChangeItems(r.tables.Steps, "template_category_id", c.ID, changes)
	if err != nil {
		return entities.Category{}, err
	}
	items = append(items, templateItems...)

	if err := transact(ctx, r.ddb, items); err != nil {
		log.Printf("[category][dynamodb] write failed category_id=%s err=%v", c.ID, err)
		return entities.Category{}, err
	}
	return c, nil
}

func unmarshalCategories(items []map[string]types.AttributeValue) ([]entities.Category, error) {
	var its []categoryItem
	if err := attributevalue.UnmarshalListOfMaps(items, &its); err != nil {
		return nil, err
	}
	out := make([]entities.Category, 0, len(its))
	for _, it := range its {
		out = append(out, fromCategoryItem(it))
	}
	return out, nil
}

func fromCategoryItem(it categoryItem) entities.Category {
	return entities.Category{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
