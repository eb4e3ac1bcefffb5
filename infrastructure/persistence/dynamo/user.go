package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"hrdesk-backend/domain/errs"
	"hrdesk-backend/domain/model"
)

type userItem struct {
	ID             int    `dynamodbav:"id"`
	Username       string `dynamodbav:"username"`
	HashedPassword string `dynamodbav:"hashed_password"`
}

// UserStore implements persistence.UserStore on DynamoDB.
type UserStore struct {
	client  API
	table   string
	counter *Counter
}

func NewUserStore(client API, table string, counter *Counter) *UserStore {
	return &UserStore{client: client, table: table, counter: counter}
}

func (s *UserStore) Create(ctx context.Context, u *model.User) (*model.User, error) {
	existing, err := s.GetByUsername(ctx, u.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrDuplicateName
	}

	id, err := s.counter.NextID(ctx, model.CounterUsers)
	if err != nil {
		return nil, err
	}
	u.ID = id

	item, err := attributevalue.MarshalMap(userItem{
		ID:             u.ID,
		Username:       u.Username,
		HashedPassword: u.HashedPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("failed to put user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	raw, err := scanAll(ctx, s.client, s.table, nil)
	if err != nil {
		return nil, err
	}
	var items []userItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal users: %w", err)
	}
	out := make([]model.User, 0, len(items))
	for _, it := range items {
		out = append(out, model.User{ID: it.ID, Username: it.Username, HashedPassword: it.HashedPassword})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
