package repository

import (
	"context"
	"strconv"
	"time"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// addressItem flattens the address -> neighborhood -> city -> state chain.
type addressItem struct {
	ID               string `dynamodbav:"id"`
	Street           string `dynamodbav:"street,omitempty"`
	Number           string `dynamodbav:"number,omitempty"`
	Complement       string `dynamodbav:"complement,omitempty"`
	ZipCode          string `dynamodbav:"zip_code,omitempty"`
	NeighborhoodID   string `dynamodbav:"neighborhood_id,omitempty"`
	NeighborhoodName string `dynamodbav:"neighborhood_name,omitempty"`
	CityID           string `dynamodbav:"city_id,omitempty"`
	CityName         string `dynamodbav:"city_name,omitempty"`
	StateID          string `dynamodbav:"state_id,omitempty"`
	StateName        string `dynamodbav:"state_name,omitempty"`
	StateUF          string `dynamodbav:"state_uf,omitempty"`
}

type clientItem struct {
	ID        string       `dynamodbav:"id"`
	Name      string       `dynamodbav:"name"`
	Email     string       `dynamodbav:"email,omitempty"`
	Phone     string       `dynamodbav:"phone,omitempty"`
	Active    bool         `dynamodbav:"active"`
	Address   *addressItem `dynamodbav:"address,omitempty"`
	CreatedAt string       `dynamodbav:"created_at"`
	UpdatedAt string       `dynamodbav:"updated_at"`
}

// ClientDynamoRepository reads the clients table, which is written by the
// clients subsystem.
//
// Table requirements:
//   - PK: id (string)

type ClientDynamoRepository struct {
	ddb    DynamoAPI
	tables Tables
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb DynamoAPI, tables Tables) *ClientDynamoRepository {
	return &ClientDynamoRepository{ddb: ddb, tables: tables}
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Clients),
		Key:       idKey(id),
	})
	if err != nil {
		return entities.Client{}, err
	}
	if len(out.Item) == 0 {
		return entities.Client{}, nil
	}
	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Client{}, err
	}
	return fromClientItem(it), nil
}

func (r *ClientDynamoRepository) GetByIDs(ctx context.Context, ids []string) ([]entities.Client, error) {
	items, err := batchGetByID(ctx, r.ddb, r.tables.Clients, ids)
	if err != nil {
		return nil, err
	}
	var its []clientItem
	if err := attributevalue.UnmarshalListOfMaps(items, &its); err != nil {
		return nil, err
	}
	out := make([]entities.Client, 0, len(its))
	for _, it := range its {
		out = append(out, fromClientItem(it))
	}
	return out, nil
}

func (r *ClientDynamoRepository) Count(ctx context.Context) (int, error) {
	return countAll(ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tables.Clients)})
}

// CountCreatedBetween counts clients with from <= created_at < to.
func (r *ClientDynamoRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	return countAll(ctx, r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tables.Clients),
		FilterExpression: aws.String("#created_at >= :from AND #created_at < :to"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from": &types.AttributeValueMemberS{Value: formatTime(from)},
			":to":   &types.AttributeValueMemberS{Value: formatTime(to)},
		},
		ExpressionAttributeNames: map[string]string{"#created_at": "created_at"},
	})
}

func fromClientItem(it clientItem) entities.Client {
	c := entities.Client{
		ID:        it.ID,
		Name:      it.Name,
		Email:     it.Email,
		Phone:     it.Phone,
		Active:    it.Active,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
	if a := it.Address; a != nil {
		c.Address = &entities.Address{
			ID:         a.ID,
			Street:     a.Street,
			Number:     a.Number,
			Complement: a.Complement,
			ZipCode:    a.ZipCode,
		}
		if a.NeighborhoodID != "" || a.CityID != "" {
			n := &entities.Neighborhood{ID: a.NeighborhoodID, Name: a.NeighborhoodName}
			if a.CityID != "" {
				n.City = &entities.City{ID: a.CityID, Name: a.CityName}
				if a.StateID != "" {
					n.City.State = &entities.State{ID: a.StateID, Name: a.StateName, UF: a.StateUF}
				}
			}
			c.Address.Neighborhood = n
		}
	}
	return c
}

type catalogItem struct {
	ID           string `dynamodbav:"id"`
	Model        string `dynamodbav:"model"`
	Manufacturer string `dynamodbav:"manufacturer"`
	Description  string `dynamodbav:"description,omitempty"`
}

type copyMachineItem struct {
	ID                   string       `dynamodbav:"id"`
	SerialNumber         string       `dynamodbav:"serial_number"`
	ClientID             string       `dynamodbav:"client_id"`
	CatalogCopyMachineID string       `dynamodbav:"catalog_copy_machine_id,omitempty"`
	AcquisitionType      string       `dynamodbav:"acquisition_type"`
	Value                string       `dynamodbav:"value,omitempty"`
	Catalog              *catalogItem `dynamodbav:"catalog,omitempty"`
}

// CopyMachineDynamoRepository reads the client copy machines table. The
// catalog entry is denormalized on each item.
//
// Table requirements:
//   - PK: id (string)

type CopyMachineDynamoRepository struct {
	ddb    DynamoAPI
	tables Tables
}

var _ interfaces.ICopyMachineRepository = (*CopyMachineDynamoRepository)(nil)

func NewCopyMachineDynamoRepository(ddb DynamoAPI, tables Tables) *CopyMachineDynamoRepository {
	return &CopyMachineDynamoRepository{ddb: ddb, tables: tables}
}

func (r *CopyMachineDynamoRepository) GetByID(ctx context.Context, id string) (entities.ClientCopyMachine, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.CopyMachines),
		Key:       idKey(id),
	})
	if err != nil {
		return entities.ClientCopyMachine{}, err
	}
	if len(out.Item) == 0 {
		return entities.ClientCopyMachine{}, nil
	}
	var it copyMachineItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ClientCopyMachine{}, err
	}
	return fromCopyMachineItem(it), nil
}

func (r *CopyMachineDynamoRepository) GetByIDs(ctx context.Context, ids []string) ([]entities.ClientCopyMachine, error) {
	items, err := batchGetByID(ctx, r.ddb, r.tables.CopyMachines, ids)
	if err != nil {
		return nil, err
	}
	var its []copyMachineItem
	if err := attributevalue.UnmarshalListOfMaps(items, &its); err != nil {
		return nil, err
	}
	out := make([]entities.ClientCopyMachine, 0, len(its))
	for _, it := range its {
		out = append(out, fromCopyMachineItem(it))
	}
	return out, nil
}

func fromCopyMachineItem(it copyMachineItem) entities.ClientCopyMachine {
	value, _ := strconv.ParseFloat(it.Value, 64)
	m := entities.ClientCopyMachine{
		ID:                   it.ID,
		SerialNumber:         it.SerialNumber,
		ClientID:             it.ClientID,
		CatalogCopyMachineID: it.CatalogCopyMachineID,
		AcquisitionType:      entities.AcquisitionType(it.AcquisitionType),
		Value:                value,
	}
	if it.Catalog != nil {
		m.CatalogCopyMachine = &entities.CatalogCopyMachine{
			ID:           it.Catalog.ID,
			Model:        it.Catalog.Model,
			Manufacturer: it.Catalog.Manufacturer,
			Description:  it.Catalog.Description,
		}
	}
	return m
}
