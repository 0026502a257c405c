package requests_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/offerdesk/app/models"
	"github.com/shashiranjanraj/offerdesk/app/requests"
	"github.com/shashiranjanraj/offerdesk/pkg/validate"
)

func decode(t *testing.T, body string, dest any) map[string]string {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), dest))
	return validate.Struct(dest)
}

func TestUserZeroValuesArePresent(t *testing.T) {
	var u requests.User
	errs := decode(t, `{"id":0,"first_name":"","last_name":"","age":0,"email":"","role":"","phone":""}`, &u)
	assert.Empty(t, errs)
	assert.Equal(t, models.User{}, u.ToModel())
}

func TestUserMissingKeys(t *testing.T) {
	var u requests.User
	errs := decode(t, `{"id":1,"first_name":"Ann"}`, &u)
	assert.Len(t, errs, 5)
	assert.Contains(t, errs, "phone")
}

func TestCreateOrderRequiresEveryField(t *testing.T) {
	var o requests.CreateOrder
	errs := decode(t, `{"name":"Paint fence"}`, &o)

	for _, key := range []string{"id", "description", "start_date", "end_date", "address", "price", "customer_id", "executor_id"} {
		assert.Contains(t, errs, key)
	}
	assert.NotContains(t, errs, "name")
}

func TestOrderFieldsDoNotNeedID(t *testing.T) {
	var o requests.OrderFields
	errs := decode(t, `{"name":"n","description":"d","start_date":"1/2/2023","end_date":"01/03/2023","address":"a","price":0,"customer_id":1,"executor_id":2}`, &o)
	require.Empty(t, errs)

	m, derrs := o.ToModel(7)
	require.Empty(t, derrs)
	assert.Equal(t, 7, m.ID)
	assert.Equal(t, "01/02/2023", models.FormatDate(m.StartDate))
}

func TestOrderBadDates(t *testing.T) {
	var o requests.CreateOrder
	require.Empty(t, decode(t, `{"id":1,"name":"n","description":"d","start_date":"2023-01-02","end_date":"13/40/2023","address":"a","price":1,"customer_id":1,"executor_id":2}`, &o))

	_, errs := o.ToModel()
	assert.Contains(t, errs, "start_date")
	assert.Contains(t, errs, "end_date")
}

func TestFromOrderRoundTrip(t *testing.T) {
	start, _ := models.ParseDate("01/02/2023")
	end, _ := models.ParseDate("01/05/2023")
	in := models.Order{ID: 50, Name: "Paint fence", StartDate: start, EndDate: end, Price: 100, CustomerID: 1, ExecutorID: 2}

	out, errs := requests.FromOrder(in).ToModel()
	require.Empty(t, errs)
	assert.Equal(t, in, out)
}

func TestOffer(t *testing.T) {
	var o requests.CreateOffer
	require.Empty(t, decode(t, `{"id":3,"order_id":50,"executor_id":2}`, &o))
	assert.Equal(t, models.Offer{ID: 3, OrderID: 50, ExecutorID: 2}, o.ToModel())

	var f requests.OfferFields
	errs := decode(t, `{"order_id":50}`, &f)
	assert.Contains(t, errs, "executor_id")
}
