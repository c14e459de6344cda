package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/milkbill/internal/domain/models"
)

type fakeStore struct {
	searchTerm  string
	searchLimit int
	searches    int
	results     []models.Customer
	upserted    []models.Customer
	bills       []models.BillRecord
	err         error
}

func (f *fakeStore) SearchCustomers(_ context.Context, term string, limit int) ([]models.Customer, error) {
	f.searches++
	f.searchTerm, f.searchLimit = term, limit
	return f.results, f.err
}

func (f *fakeStore) UpsertCustomer(_ context.Context, customer models.Customer) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, customer)
	return nil
}

func (f *fakeStore) InsertBill(_ context.Context, bill models.BillRecord) error {
	if f.err != nil {
		return f.err
	}
	f.bills = append(f.bills, bill)
	return nil
}

func (f *fakeStore) ListBills(_ context.Context, period string) ([]models.BillRecord, error) {
	var out []models.BillRecord
	for _, b := range f.bills {
		if b.BillingPeriod == period {
			out = append(out, b)
		}
	}
	return out, f.err
}

func TestSearch(t *testing.T) {
	store := &fakeStore{results: []models.Customer{{Name: "Asha", MobileNumber: "9876543210"}}}
	svc := NewService(store, store, nil)

	customers, err := svc.Search(context.Background(), "  as ")
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, "as", store.searchTerm)
	assert.Equal(t, SearchLimit, store.searchLimit)
}

func TestSearchBlankTerm(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, store, nil)

	customers, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, customers)
	assert.NotNil(t, customers)
	assert.Zero(t, store.searches)
}

func TestSearchStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("boom")}
	svc := NewService(store, store, nil)

	_, err := svc.Search(context.Background(), "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search customers")
}

func TestSaveCustomer(t *testing.T) {
	tests := []struct {
		name     string
		customer models.Customer
		wantErr  error
	}{
		{name: "valid", customer: models.Customer{Name: " Asha ", MobileNumber: " 9876543210 "}},
		{name: "missing name", customer: models.Customer{MobileNumber: "9876543210"}, wantErr: ErrInvalidCustomer},
		{name: "short mobile", customer: models.Customer{Name: "Asha", MobileNumber: "98765"}, wantErr: ErrInvalidCustomer},
		{name: "long mobile", customer: models.Customer{Name: "Asha", MobileNumber: "919876543210"}, wantErr: ErrInvalidCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			err := NewService(store, store, nil).SaveCustomer(context.Background(), tt.customer)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.upserted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []models.Customer{{Name: "Asha", MobileNumber: "9876543210"}}, store.upserted)
		})
	}
}

func TestRecordBillAndList(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, store, nil)

	require.ErrorIs(t, svc.RecordBill(context.Background(), models.BillRecord{MobileNumber: "9876543210"}), ErrInvalidBill)

	require.NoError(t, svc.RecordBill(context.Background(), models.BillRecord{
		CustomerName: "Asha", MobileNumber: "9876543210", BillingPeriod: "March 2024", TotalAmount: 240,
	}))
	require.NoError(t, svc.RecordBill(context.Background(), models.BillRecord{
		CustomerName: "Ravi", MobileNumber: "9123456780", BillingPeriod: "April 2024", TotalAmount: 100,
	}))

	bills, err := svc.BillsForPeriod(context.Background(), "March 2024")
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "Asha", bills[0].CustomerName)
}
