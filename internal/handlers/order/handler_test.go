package order_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"resto/internal/handlers/order"
)

func TestFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/orders?tableId=t5&status=new,%20cooking,&isSettled=false", nil)

	filter := order.Filter(r)
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(orders.table_id = :table_id AND orders.status IN (:status_0, :status_1) AND orders.is_settled = :is_settled)", where)
	assert.Equal(t, "t5", args["table_id"])
	assert.Equal(t, "new", args["status_0"])
	assert.Equal(t, "cooking", args["status_1"])
	assert.Equal(t, false, args["is_settled"])
}

func TestFilter_Empty(t *testing.T) {
	filter := order.Filter(httptest.NewRequest("GET", "/v1/orders", nil))
	where, _ := filter.GetWhereClause()

	assert.Empty(t, where)
}
