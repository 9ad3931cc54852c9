package repositories

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleErrorWithID(t *testing.T) {
	br := NewBaseRepository(nil)

	assert.NoError(t, br.HandleErrorWithID("get", "listing", 1, nil))

	err := br.HandleErrorWithID("get", "listing", 42, sql.ErrNoRows)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "listing with ID 42 not found")

	err = br.HandleError("update", "listing", fmt.Errorf("connection reset"))
	assert.False(t, IsNotFound(err))
	var repoErr *RepositoryError
	assert.ErrorAs(t, err, &repoErr)
	assert.Equal(t, "update", repoErr.Operation)
}

func TestErrorHelpers(t *testing.T) {
	notFound := &NotFoundError{Entity: "account", ID: int64(7)}
	conflict := &ConflictError{Entity: "watch", Field: "listing_id", Value: int64(3)}
	integrity := &IntegrityError{Entity: "account", Constraint: "listings_seller_fk", Err: fmt.Errorf("fk")}

	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsConflict(conflict))
	assert.True(t, IsIntegrityViolation(integrity))

	assert.False(t, IsNotFound(conflict))
	assert.False(t, IsConflict(integrity))
	assert.False(t, IsIntegrityViolation(notFound))

	// Classification survives wrapping.
	wrapped := fmt.Errorf("deleting account: %w", integrity)
	assert.True(t, IsIntegrityViolation(wrapped))
	assert.Contains(t, integrity.Error(), "listings_seller_fk")
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Entity: "account", Field: "rating", Reason: "must be between 0 and 5"}
	assert.Equal(t, "invalid account.rating: must be between 0 and 5", err.Error())
}
