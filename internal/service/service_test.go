package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rp-market/internal/core/auth"
	"rp-market/internal/domain"
	"rp-market/internal/repo"
	"rp-market/internal/repo/repotest"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) NotifyOrder(o domain.Order, p domain.Product) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, o.ID+"/"+p.Name)
}

func testJWT(issuer string) *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: issuer, TTL: 24 * time.Hour}
}

func str(s string) *string { return &s }

func TestAuthService_RegisterLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repo.NewUserRepo(repotest.NewDB(t)), testJWT("rp-market"), zap.NewNop())

	u, err := svc.Register(ctx, "trevor", "philips1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NotEqual(t, "philips1", u.PasswordHash)

	_, err = svc.Register(ctx, "trevor", "other")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	tok, id, exp, err := svc.Login(ctx, "trevor", "philips1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, domain.Identity{ID: u.ID, Username: "trevor", Role: domain.RoleUser}, id)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	_, _, _, err = svc.Login(ctx, "trevor", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, _, err = svc.Login(ctx, "nobody", "philips1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "trevor", got.Username)
	_, err = svc.Profile(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repo.NewUserRepo(repotest.NewDB(t)), testJWT("rp-market"), zap.NewNop())

	u, created, err := svc.EnsureAdmin(ctx, "boss", "pw123456")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, u.IsAdmin())

	_, err = svc.Register(ctx, "lamar", "pw123456")
	require.NoError(t, err)
	u, created, err = svc.EnsureAdmin(ctx, "lamar", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, u.IsAdmin())

	admins, err := svc.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	_, id, _, err := svc.Login(ctx, "lamar", "pw123456")
	require.NoError(t, err)
	assert.True(t, id.IsAdmin)
}

func newCatalog(t *testing.T) *CatalogService {
	return NewCatalogService(repo.NewProductRepo(repotest.NewDB(t)), zap.NewNop())
}

func baseInput() ProductInput {
	price, stock := 1000.0, 3
	return ProductInput{
		Name:        str("Pegassi Zentorno"),
		Price:       &price,
		Stock:       &stock,
		Description: str("fast"),
		ImageURL:    str("https://img/z.png"),
	}
}

func TestCatalogService_CreateDiscount(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog(t)

	in := baseInput()
	d := 20.0
	in.DiscountPercentage = &d
	p, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 800.0, p.Price)
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, 1000.0, *p.OriginalPrice)
	assert.Equal(t, domain.ProductNormal, p.Type)

	plain, err := svc.Create(ctx, baseInput())
	require.NoError(t, err)
	assert.Equal(t, 1000.0, plain.Price)
	assert.Nil(t, plain.OriginalPrice)

	in = baseInput()
	in.Name = str("  ")
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogService_CarGallery(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog(t)

	car := domain.ProductCar
	in := baseInput()
	in.Type = &car
	in.Images = &[]domain.ProductImage{{URL: "c", Order: 3}, {URL: "a", Order: 1}, {URL: "", Order: 0}, {URL: "b", Order: 2}}
	p, err := svc.Create(ctx, in)
	require.NoError(t, err)
	require.Len(t, p.Images, 3)
	assert.Equal(t, "a", p.Images[0].URL)
	assert.Equal(t, "c", p.Images[2].URL)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Images, 3)

	normal := domain.ProductNormal
	up, err := svc.Update(ctx, p.ID, ProductInput{Type: &normal})
	require.NoError(t, err)
	assert.Empty(t, up.Images)

	in = baseInput()
	in.Images = &[]domain.ProductImage{{URL: "x", Order: 1}}
	n, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Empty(t, n.Images)
}

func TestCatalogService_UpdateDiscountRule(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog(t)
	p, err := svc.Create(ctx, baseInput())
	require.NoError(t, err)

	d := 50.0
	_, err = svc.Update(ctx, p.ID, ProductInput{DiscountPercentage: &d})
	assert.ErrorIs(t, err, domain.ErrValidation)

	price := 600.0
	up, err := svc.Update(ctx, p.ID, ProductInput{DiscountPercentage: &d, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 300.0, up.Price)
	require.NotNil(t, up.OriginalPrice)
	assert.Equal(t, 600.0, *up.OriginalPrice)
	assert.Equal(t, 50.0, up.DiscountPercentage)

	// the stored effective price is never re-derived on its own
	stock := 9
	up, err = svc.Update(ctx, p.ID, ProductInput{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 300.0, up.Price)
	assert.Equal(t, 9, up.Stock)

	_, err = svc.Update(ctx, "missing", ProductInput{Stock: &stock})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_Queries(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog(t)
	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, baseInput())
		require.NoError(t, err)
	}

	empty, err := svc.Search(ctx, "   ", true)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	preview, err := svc.Search(ctx, "zentorno", false)
	require.NoError(t, err)
	assert.Len(t, preview, SearchPreviewLimit)
	full, err := svc.Search(ctx, "ZENTORNO", true)
	require.NoError(t, err)
	assert.Len(t, full, 7)

	pop, err := svc.Popular(ctx)
	require.NoError(t, err)
	assert.Empty(t, pop)

	_, err = svc.RecordView(ctx, full[0].ID)
	require.NoError(t, err)
	pop, err = svc.Popular(ctx)
	require.NoError(t, err)
	require.Len(t, pop, 1)
	assert.EqualValues(t, 1, pop[0].ViewCount)

	_, err = svc.RecordView(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewDB(t)
	products := repo.NewProductRepo(db)
	orders := repo.NewOrderRepo(db)
	n := &recordingNotifier{}
	svc := NewOrderService(orders, products, n, zap.NewNop())
	catalog := NewCatalogService(products, zap.NewNop())

	p, err := catalog.Create(ctx, baseInput())
	require.NoError(t, err)

	_, err = svc.Create(ctx, OrderInput{ProductID: p.ID, PhoneNumber: "555"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	o, err := svc.Create(ctx, OrderInput{ProductID: p.ID, FullName: " Michael ", PhoneNumber: "555-0100", Note: "blue"})
	require.NoError(t, err)
	assert.Equal(t, "Michael", o.FullName)
	assert.False(t, o.IsRead)
	assert.Equal(t, []string{o.ID + "/Pegassi Zentorno"}, n.calls)

	ghost, err := svc.Create(ctx, OrderInput{ProductID: "gone", FullName: "X", PhoneNumber: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NotNil(t, ghost)
	assert.Len(t, n.calls, 1)

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, o.ID, list[0].ID)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), domain.ErrNotFound)
}

func TestSaleService_ComputesServerSide(t *testing.T) {
	ctx := context.Background()
	svc := NewSaleService(repo.NewSaleRepo(repotest.NewDB(t)))

	s, err := svc.Create(ctx, SaleInput{Name: "Engine kit", Values: []float64{100, 50}, ProfitRate: 25, TaxRate: 15})
	require.NoError(t, err)
	assert.Equal(t, 150.0, s.TotalCost)
	assert.Equal(t, 187.5, s.ProfitPrice)
	assert.Equal(t, 28.125, s.Tax)
	assert.Equal(t, 215.625, s.FinalPrice)

	_, err = svc.Create(ctx, SaleInput{Name: "empty"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []float64{100, 50}, []float64(list[0].Values))
}

func TestNoteService(t *testing.T) {
	ctx := context.Background()
	svc := NewNoteService(repo.NewNoteRepo(repotest.NewDB(t)))

	n, err := svc.Create(ctx, "u1", "Shift", "restock tyres", "")
	require.NoError(t, err)
	assert.Equal(t, domain.NotePending, n.Status)

	_, err = svc.Create(ctx, "u1", "Long", strings.Repeat("ş", domain.NoteContentMax+1), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Create(ctx, "u1", "Max", strings.Repeat("ş", domain.NoteContentMax), "")
	assert.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "Bad", "x", "archived")
	assert.ErrorIs(t, err, domain.ErrValidation)

	up, err := svc.UpdateStatus(ctx, n.ID, "u1", domain.NoteDone)
	require.NoError(t, err)
	assert.Equal(t, domain.NoteDone, up.Status)
	_, err = svc.UpdateStatus(ctx, n.ID, "u2", domain.NotePending)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	done, err := svc.List(ctx, "u1", domain.NoteDone)
	require.NoError(t, err)
	assert.Len(t, done, 1)
	others, err := svc.List(ctx, "u2", "")
	require.NoError(t, err)
	assert.Empty(t, others)

	require.NoError(t, svc.Delete(ctx, n.ID))
	assert.ErrorIs(t, svc.Delete(ctx, n.ID), domain.ErrNotFound)
}

func TestBackDoorService(t *testing.T) {
	ctx := context.Background()
	jwt := testJWT("rp-market-backdoor")
	svc := NewBackDoorService(repo.NewBackDoorRepo(repotest.NewDB(t)), jwt, zap.NewNop())

	a, pw, err := svc.Create(ctx, "mechanic", "garage access")
	require.NoError(t, err)
	assert.Regexp(t, `^[1-9][0-9]{5}$`, pw)
	assert.True(t, a.IsActive)

	_, _, err = svc.Create(ctx, "mechanic", "")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, _, err = svc.Login(ctx, "mechanic", "000000")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "ghost", pw)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	tok, acc, err := svc.Login(ctx, "mechanic", pw)
	require.NoError(t, err)
	require.NotNil(t, acc.LastLogin)
	c, err := jwt.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, a.ID, c.UID)
	assert.False(t, c.IsAdmin)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].LoginHistory, 1)

	newPW, err := svc.ResetPassword(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, newPW, BackDoorPasswordDigits)
	_, _, err = svc.Login(ctx, "mechanic", newPW)
	require.NoError(t, err)

	off, err := svc.ToggleActive(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, off.IsActive)
	_, _, err = svc.Login(ctx, "mechanic", newPW)
	assert.ErrorIs(t, err, domain.ErrInactive)

	_, err = svc.ResetPassword(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), domain.ErrNotFound)
}

func TestSettingService_ConcurrentFirstRead(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingService(repo.NewSettingRepo(repotest.NewDB(t)))

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Get(ctx); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	s, err := svc.ToggleOrderButton(ctx)
	require.NoError(t, err)
	assert.True(t, s.IsOrderButtonGloballyHidden)
	s, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, s.IsOrderButtonGloballyHidden)
}

type ctxCheckingSettings struct{ domain.SettingRepository }

func (ctxCheckingSettings) Get(ctx context.Context) (*domain.Setting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &domain.Setting{ID: domain.SettingID}, nil
}

func TestSettingService_GetIgnoresCallerCancel(t *testing.T) {
	svc := NewSettingService(ctxCheckingSettings{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.False(t, s.IsOrderButtonGloballyHidden)
}
