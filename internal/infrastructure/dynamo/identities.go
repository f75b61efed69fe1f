package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/otp-auth-api/internal/domain"
)

// IdentityRepo provides typed DynamoDB operations for the identities table.
// Contact lookups go through the phone_number/email GSIs so a record is only
// ever located by exactly one of the two fields.
type IdentityRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewIdentityRepo(client *dynamodb.Client, tableName string) *IdentityRepo {
	return &IdentityRepo{client: client, tableName: tableName}
}

func (r *IdentityRepo) Put(ctx context.Context, i *domain.Identity) error {
	item, err := attributevalue.MarshalMap(i)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *IdentityRepo) Get(ctx context.Context, identityID string) (*domain.Identity, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(domain.AttrIdentityID, identityID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("identity not found: %w", domain.ErrNotFound)
	}
	var i domain.Identity
	if err := attributevalue.UnmarshalMap(out.Item, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *IdentityRepo) FindByPhone(ctx context.Context, phone string) (*domain.Identity, error) {
	return r.queryGSI(ctx, "phone_number-index", domain.AttrPhoneNumber, phone)
}

func (r *IdentityRepo) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return r.queryGSI(ctx, "email-index", domain.AttrEmail, email)
}

// Update applies a partial update and returns the full post-update record.
func (r *IdentityRepo) Update(ctx context.Context, identityID string, updates map[string]interface{}) (*domain.Identity, error) {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return nil, err
	}
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(domain.AttrIdentityID, identityID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, err
	}
	var i domain.Identity
	if err := attributevalue.UnmarshalMap(out.Attributes, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// DeleteReturning removes the identity and returns the removed record, or
// ErrNotFound when no record existed under that id.
func (r *IdentityRepo) DeleteReturning(ctx context.Context, identityID string) (*domain.Identity, error) {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          strKey(domain.AttrIdentityID, identityID),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, err
	}
	if len(out.Attributes) == 0 {
		return nil, fmt.Errorf("identity not found: %w", domain.ErrNotFound)
	}
	var i domain.Identity
	if err := attributevalue.UnmarshalMap(out.Attributes, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// ScanAll returns every identity projected to its public fields.
// "status" is a DynamoDB reserved word, hence the attribute-name placeholder.
func (r *IdentityRepo) ScanAll(ctx context.Context) ([]domain.PublicIdentity, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		ProjectionExpression:     aws.String("identity_id, email, phone_number, #s"),
		ExpressionAttributeNames: map[string]string{"#s": domain.AttrStatus},
	})
	if err != nil {
		return nil, err
	}
	identities := []domain.PublicIdentity{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &identities); err != nil {
		return nil, err
	}
	return identities, nil
}

func (r *IdentityRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.Identity, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("identity not found: %w", domain.ErrNotFound)
	}
	var i domain.Identity
	if err := attributevalue.UnmarshalMap(out.Items[0], &i); err != nil {
		return nil, err
	}
	return &i, nil
}
