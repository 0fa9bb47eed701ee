package repository

import (
	"context"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const imagesStepIDIndex = "step_id-index"

type imageItem struct {
	ID        string `dynamodbav:"id"`
	Path      string `dynamodbav:"path"`
	StepID    string `dynamodbav:"step_id"`
	CreatedAt string `dynamodbav:"created_at"`
}

// ImageDynamoRepository persists image records. The bytes live in the image
// storage.
//
// Table requirements:
//   - PK: id (string)
//   - GSI step_id-index: step_id (string)

type ImageDynamoRepository struct {
	ddb    DynamoAPI
	tables Tables
}

var _ interfaces.IImageRepository = (*ImageDynamoRepository)(nil)

func NewImageDynamoRepository(ddb DynamoAPI, tables Tables) *ImageDynamoRepository {
	return &ImageDynamoRepository{ddb: ddb, tables: tables}
}

func (r *ImageDynamoRepository) Create(ctx context.Context, img entities.Image) (entities.Image, error) {
	av, err := attributevalue.MarshalMap(imageItem{
		ID:        img.ID,
		Path:      img.Path,
		StepID:    img.StepID,
		CreatedAt: formatTime(img.CreatedAt),
	})
	if err != nil {
		return entities.Image{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tables.Images),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.Image{}, err
	}
	return img, nil
}

func (r *ImageDynamoRepository) GetByID(ctx context.Context, id string) (entities.Image, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tables.Images),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Image{}, err
	}
	if len(out.Item) == 0 {
		return entities.Image{}, nil
	}
	var it imageItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Image{}, err
	}
	return fromImageItem(it), nil
}

func (r *ImageDynamoRepository) ListByStepID(ctx context.Context, stepID string) ([]entities.Image, error) {
	items, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Images),
		IndexName:              aws.String(imagesStepIDIndex),
		KeyConditionExpression: aws.String("step_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: stepID},
		},
	})
	if err != nil {
		return nil, err
	}
	var its []imageItem
	if err := attributevalue.UnmarshalListOfMaps(items, &its); err != nil {
		return nil, err
	}
	out := make([]entities.Image, 0, len(its))
	for _, it := range its {
		out = append(out, fromImageItem(it))
	}
	return out, nil
}

func (r *ImageDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tables.Images),
		Key:       idKey(id),
	})
	return err
}

func fromImageItem(it imageItem) entities.Image {
	return entities.Image{
		ID:        it.ID,
		Path:      it.Path,
		StepID:    it.StepID,
		CreatedAt: parseTime(it.CreatedAt),
	}
}
