package repository

import (
	"context"
	"strconv"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type clientStatsItem struct {
	Total        int `dynamodbav:"total"`
	NewThisMonth int `dynamodbav:"new_this_month"`
}

type serviceStatsItem struct {
	Total      int `dynamodbav:"total"`
	Pending    int `dynamodbav:"pending"`
	InProgress int `dynamodbav:"in_progress"`
	Completed  int `dynamodbav:"completed"`
	Cancelled  int `dynamodbav:"cancelled"`
	Overdue    int `dynamodbav:"overdue"`
	ThisWeek   int `dynamodbav:"this_week"`
	ThisMonth  int `dynamodbav:"this_month"`
}

type dashboardStatsItem struct {
	Year      int              `dynamodbav:"year"`
	Month     int              `dynamodbav:"month"`
	Clients   clientStatsItem  `dynamodbav:"clients"`
	Services  serviceStatsItem `dynamodbav:"services"`
	CreatedAt string           `dynamodbav:"created_at"`
	UpdatedAt string           `dynamodbav:"updated_at"`
}

// DashboardStatsDynamoRepository stores monthly snapshots.
//
// Table requirements:
//   - PK: year (number)
//   - SK: month (number)

type DashboardStatsDynamoRepository struct {
	ddb    DynamoAPI
	tables Tables
}

var _ interfaces.IDashboardStatsRepository = (*DashboardStatsDynamoRepository)(nil)

func NewDashboardStatsDynamoRepository(ddb DynamoAPI, tables Tables) *DashboardStatsDynamoRepository {
	return &DashboardStatsDynamoRepository{ddb: ddb, tables: tables}
}

func snapshotKey(year, month int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"year":  &types.AttributeValueMemberN{Value: strconv.Itoa(year)},
		"month": &types.AttributeValueMemberN{Value: strconv.Itoa(month)},
	}
}

func (r *DashboardStatsDynamoRepository) Get(ctx context.Context, year, month int) (entities.DashboardStats, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tables.DashboardStats),
		Key:            snapshotKey(year, month),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.DashboardStats{}, err
	}
	if len(out.Item) == 0 {
		return entities.DashboardStats{}, nil
	}
	var it dashboardStatsItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.DashboardStats{}, err
	}
	return fromDashboardStatsItem(it), nil
}

// Upsert writes the counters of (year, month). created_at is only set the
// first time the snapshot is written.
func (r *DashboardStatsDynamoRepository) Upsert(ctx context.Context, s entities.DashboardStats) (entities.DashboardStats, error) {
	it := toDashboardStatsItem(s)
	clients, err := attributevalue.Marshal(it.Clients)
	if err != nil {
		return entities.DashboardStats{}, err
	}
	services, err := attributevalue.Marshal(it.Services)
	if err != nil {
		return entities.DashboardStats{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tables.DashboardStats),
		Key:              snapshotKey(s.Year, s.Month),
		UpdateExpression: aws.String("SET #clients = :clients, #services = :services, #updated_at = :updated_at, #created_at = if_not_exists(#created_at, :created_at)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":clients":    clients,
			":services":   services,
			":updated_at": &types.AttributeValueMemberS{Value: it.UpdatedAt},
			":created_at": &types.AttributeValueMemberS{Value: it.CreatedAt},
		},
		ExpressionAttributeNames: map[string]string{
			"#clients":    "clients",
			"#services":   "services",
			"#updated_at": "updated_at",
			"#created_at": "created_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.DashboardStats{}, err
	}
	var saved dashboardStatsItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &saved); err != nil {
		return entities.DashboardStats{}, err
	}
	return fromDashboardStatsItem(saved), nil
}

func (r *DashboardStatsDynamoRepository) ListAll(ctx context.Context) ([]entities.DashboardStats, error) {
	items, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tables.DashboardStats)})
	if err != nil {
		return nil, err
	}
	var its []dashboardStatsItem
	if err := attributevalue.UnmarshalListOfMaps(items, &its); err != nil {
		return nil, err
	}
	out := make([]entities.DashboardStats, 0, len(its))
	for _, it := range its {
		out = append(out, fromDashboardStatsItem(it))
	}
	return out, nil
}

func toDashboardStatsItem(s entities.DashboardStats) dashboardStatsItem {
	return dashboardStatsItem{
		Year:  s.Year,
		Month: s.Month,
		Clients: clientStatsItem{
			Total:        s.Clients.Total,
			NewThisMonth: s.Clients.NewThisMonth,
		},
		Services: serviceStatsItem{
			Total:      s.Services.Total,
			Pending:    s.Services.Pending,
			InProgress: s.Services.InProgress,
			Completed:  s.Services.Completed,
			Cancelled:  s.Services.Cancelled,
			Overdue:    s.Services.Overdue,
			ThisWeek:   s.Services.ThisWeek,
			ThisMonth:  s.Services.ThisMonth,
		},
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
	}
}

func fromDashboardStatsItem(it dashboardStatsItem) entities.DashboardStats {
	return entities.DashboardStats{
		Year:  it.Year,
		Month: it.Month,
		Clients: entities.ClientStats{
			Total:        it.Clients.Total,
			NewThisMonth: it.Clients.NewThisMonth,
		},
		Services: entities.ServiceStats{
			Total:      it.Services.Total,
			Pending:    it.Services.Pending,
			InProgress: it.Services.InProgress,
			Completed:  it.Services.Completed,
			Cancelled:  it.Services.Cancelled,
			Overdue:    it.Services.Overdue,
			ThisWeek:   it.Services.ThisWeek,
			ThisMonth:  it.Services.ThisMonth,
		},
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
