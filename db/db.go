package db

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/fretdex/model"
)

// BatchGetItem takes at most 100 keys
const maxBatch = 100

type profileItem struct {
	PK      string `dynamodbav:"PK"`
	Frets   int    `dynamodbav:"Frets"`
	Strings []int  `dynamodbav:"Strings"`
}

// Store keeps instrument profiles in a DynamoDB table keyed by PK = name.
type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewStore(endpoint, region, table string) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return NewStoreWithClient(dynamodb.New(sess), table), nil
}

func NewStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

func (s *Store) GetProfiles(names []string) (map[string]model.ProfileRecord, error) {
	if len(names) > maxBatch {
		return nil, fmt.Errorf("not supposed to pass in more than %d names, got %d", maxBatch, len(names))
	}

	res := make(map[string]model.ProfileRecord)
	if len(names) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, name := range names {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(name)},
		})
	}

	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			s.table: {Keys: keys},
		},
	}
	out, err := s.client.BatchGetItem(input)
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}

	for _, v := range out.Responses[s.table] {
		var item profileItem
		if err := dynamodbattribute.UnmarshalMap(v, &item); err != nil {
			return nil, fmt.Errorf("decoding profile item: %w", err)
		}
		res[item.PK] = model.ProfileRecord{Name: item.PK, Frets: item.Frets, Strings: item.Strings}
	}
	return res, nil
}

func (s *Store) GetProfile(name string) (model.ProfileRecord, bool, error) {
	res, err := s.GetProfiles([]string{name})
	if err != nil {
		return model.ProfileRecord{}, false, err
	}
	r, ok := res[name]
	return r, ok, nil
}

func (s *Store) PutProfile(r model.ProfileRecord) error {
	if r.Name == "" {
		return fmt.Errorf("profile needs a name to be stored")
	}
	item, err := dynamodbattribute.MarshalMap(profileItem{PK: r.Name, Frets: r.Frets, Strings: r.Strings})
	if err != nil {
		return fmt.Errorf("encoding profile item: %w", err)
	}
	_, err = s.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	return nil
}
