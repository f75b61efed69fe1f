package dynamo

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/otp-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The contact fields are the S-typed hash keys of the lookup GSIs. A nil
// field must be absent from the marshaled item, not present as NULL:
// DynamoDB rejects a PutItem whose index-key attribute carries a mismatched
// type, which would fail every first-time write.

func TestIdentityMarshal_NilPhoneOmittedFromItem(t *testing.T) {
	email := "a@b.com"
	item, err := attributevalue.MarshalMap(&domain.Identity{
		IdentityID: "i1",
		Email:      &email,
		OTP:        1234,
	})
	require.NoError(t, err)

	_, present := item[domain.AttrPhoneNumber]
	assert.False(t, present)

	s, ok := item[domain.AttrEmail].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", s.Value)
}

func TestIdentityMarshal_NilEmailOmittedFromItem(t *testing.T) {
	phone := "9876543210"
	item, err := attributevalue.MarshalMap(&domain.Identity{
		IdentityID:  "i1",
		PhoneNumber: &phone,
		OTP:         1234,
	})
	require.NoError(t, err)

	_, present := item[domain.AttrEmail]
	assert.False(t, present)

	s, ok := item[domain.AttrPhoneNumber].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "9876543210", s.Value)
}
