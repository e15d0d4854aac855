package handlers

import (
	"context"
	"time"

	"github.com/ebralte/campground-api/backend/internal/models"
	"github.com/ebralte/campground-api/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// In-memory repository fakes used by the handler tests. Mutating calls are
// counted so tests can assert that gate failures never reach the store.

type fakeCampsiteRepo struct {
	campsites map[string]*models.Campsite
	order     []string
	writes    int
}

func newFakeCampsiteRepo() *fakeCampsiteRepo {
	return &fakeCampsiteRepo{campsites: make(map[string]*models.Campsite)}
}

func copyCampsite(c *models.Campsite) *models.Campsite {
	dup := *c
	dup.Comments = append([]models.Comment{}, c.Comments...)
	return &dup
}

func (r *fakeCampsiteRepo) GetAllCampsites(ctx context.Context) ([]models.Campsite, error) {
	out := []models.Campsite{}
	for _, id := range r.order {
		out = append(out, *copyCampsite(r.campsites[id]))
	}
	return out, nil
}

func (r *fakeCampsiteRepo) GetCampsiteByID(ctx context.Context, id string) (*models.Campsite, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	c, ok := r.campsites[id]
	if !ok {
		return nil, repositories.ErrCampsiteNotFound
	}
	return copyCampsite(c), nil
}

func (r *fakeCampsiteRepo) CreateCampsite(ctx context.Context, campsite *models.Campsite) error {
	r.writes++
	campsite.ID = primitive.NewObjectID()
	campsite.CreatedAt = time.Now()
	campsite.UpdatedAt = time.Now()
	if campsite.Comments == nil {
		campsite.Comments = []models.Comment{}
	}
	id := campsite.ID.Hex()
	r.campsites[id] = copyCampsite(campsite)
	r.order = append(r.order, id)
	return nil
}

func (r *fakeCampsiteRepo) UpdateCampsite(ctx context.Context, id string, update bson.M) (*models.Campsite, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	c, ok := r.campsites[id]
	if !ok {
		return nil, repositories.ErrCampsiteNotFound
	}
	r.writes++
	if v, ok := update["name"].(string); ok {
		c.Name = v
	}
	if v, ok := update["description"].(string); ok {
		c.Description = v
	}
	if v, ok := update["image"].(string); ok {
		c.Image = v
	}
	if v, ok := update["elevation"].(int); ok {
		c.Elevation = v
	}
	if v, ok := update["cost"].(float64); ok {
		c.Cost = v
	}
	if v, ok := update["featured"].(bool); ok {
		c.Featured = v
	}
	c.UpdatedAt = time.Now()
	return copyCampsite(c), nil
}

func (r *fakeCampsiteRepo) DeleteCampsite(ctx context.Context, id string) (*models.Campsite, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	c, ok := r.campsites[id]
	if !ok {
		return nil, repositories.ErrCampsiteNotFound
	}
	r.writes++
	delete(r.campsites, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return c, nil
}

func (r *fakeCampsiteRepo) DeleteAllCampsites(ctx context.Context) (int64, error) {
	r.writes++
	count := int64(len(r.campsites))
	r.campsites = make(map[string]*models.Campsite)
	r.order = nil
	return count, nil
}

func (r *fakeCampsiteRepo) ReplaceComments(ctx context.Context, id string, comments []models.Comment) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repositories.ErrInvalidID
	}
	c, ok := r.campsites[id]
	if !ok {
		return repositories.ErrCampsiteNotFound
	}
	r.writes++
	c.Comments = append([]models.Comment{}, comments...)
	return nil
}

type fakeFavoriteRepo struct {
	favorites map[uint]*models.Favorite
	writes    int
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: make(map[uint]*models.Favorite)}
}

func copyFavorite(f *models.Favorite) *models.Favorite {
	dup := *f
	dup.Campsites = append([]primitive.ObjectID{}, f.Campsites...)
	return &dup
}

func (r *fakeFavoriteRepo) GetFavoriteByUser(ctx context.Context, userID uint) (*models.Favorite, error) {
	f, ok := r.favorites[userID]
	if !ok {
		return nil, repositories.ErrFavoriteNotFound
	}
	return copyFavorite(f), nil
}

func (r *fakeFavoriteRepo) AddCampsites(ctx context.Context, userID uint, campsiteIDs []primitive.ObjectID) (*models.Favorite, error) {
	r.writes++
	f, ok := r.favorites[userID]
	if !ok {
		f = &models.Favorite{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Campsites: []primitive.ObjectID{},
			CreatedAt: time.Now(),
		}
		r.favorites[userID] = f
	}
	for _, id := range campsiteIDs {
		if !f.Contains(id) {
			f.Campsites = append(f.Campsites, id)
		}
	}
	f.UpdatedAt = time.Now()
	return copyFavorite(f), nil
}

func (r *fakeFavoriteRepo) RemoveCampsite(ctx context.Context, userID uint, campsiteID primitive.ObjectID) (*models.Favorite, error) {
	f, ok := r.favorites[userID]
	if !ok {
		return nil, repositories.ErrFavoriteNotFound
	}
	r.writes++
	for i, id := range f.Campsites {
		if id == campsiteID {
			f.Campsites = append(f.Campsites[:i], f.Campsites[i+1:]...)
			break
		}
	}
	f.UpdatedAt = time.Now()
	return copyFavorite(f), nil
}

func (r *fakeFavoriteRepo) DeleteFavorite(ctx context.Context, userID uint) (*models.Favorite, error) {
	f, ok := r.favorites[userID]
	if !ok {
		return nil, repositories.ErrFavoriteNotFound
	}
	r.writes++
	delete(r.favorites, userID)
	return f, nil
}

type fakePromotionRepo struct {
	promotions map[string]*models.Promotion
	order      []string
	writes     int
}

func newFakePromotionRepo() *fakePromotionRepo {
	return &fakePromotionRepo{promotions: make(map[string]*models.Promotion)}
}

func (r *fakePromotionRepo) GetAllPromotions(ctx context.Context) ([]models.Promotion, error) {
	out := []models.Promotion{}
	for _, id := range r.order {
		out = append(out, *r.promotions[id])
	}
	return out, nil
}

func (r *fakePromotionRepo) GetPromotionByID(ctx context.Context, id string) (*models.Promotion, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	p, ok := r.promotions[id]
	if !ok {
		return nil, repositories.ErrPromotionNotFound
	}
	dup := *p
	return &dup, nil
}

func (r *fakePromotionRepo) CreatePromotion(ctx context.Context, promotion *models.Promotion) error {
	r.writes++
	promotion.ID = primitive.NewObjectID()
	promotion.CreatedAt = time.Now()
	promotion.UpdatedAt = time.Now()
	dup := *promotion
	id := promotion.ID.Hex()
	r.promotions[id] = &dup
	r.order = append(r.order, id)
	return nil
}

func (r *fakePromotionRepo) UpdatePromotion(ctx context.Context, id string, update bson.M) (*models.Promotion, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	p, ok := r.promotions[id]
	if !ok {
		return nil, repositories.ErrPromotionNotFound
	}
	r.writes++
	if v, ok := update["name"].(string); ok {
		p.Name = v
	}
	if v, ok := update["image"].(string); ok {
		p.Image = v
	}
	if v, ok := update["cost"].(float64); ok {
		p.Cost = v
	}
	if v, ok := update["description"].(string); ok {
		p.Description = v
	}
	if v, ok := update["featured"].(bool); ok {
		p.Featured = v
	}
	p.UpdatedAt = time.Now()
	dup := *p
	return &dup, nil
}

func (r *fakePromotionRepo) DeletePromotion(ctx context.Context, id string) (*models.Promotion, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidID
	}
	p, ok := r.promotions[id]
	if !ok {
		return nil, repositories.ErrPromotionNotFound
	}
	r.writes++
	delete(r.promotions, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return p, nil
}

func (r *fakePromotionRepo) DeleteAllPromotions(ctx context.Context) (int64, error) {
	r.writes++
	count := int64(len(r.promotions))
	r.promotions = make(map[string]*models.Promotion)
	r.order = nil
	return count, nil
}

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	dup := *user
	r.users[user.ID] = &dup
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	dup := *u
	return &dup, nil
}

func (r *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			dup := *u
			return &dup, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID == firebaseUID {
			dup := *u
			return &dup, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	dup := *user
	r.users[user.ID] = &dup
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}
