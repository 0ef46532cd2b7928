package store

import (
	"sort"
	"sync"

	"artisanmarket/pkg/domain"
)

// MemoryStore keeps everything in-process. It exists for tests only: the
// system of record is always the relational store.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]domain.User
	email        map[string]string // email -> user ID
	products     map[string]domain.Product
	productOrder []string
	orders       []domain.Order
	blogs        map[string]domain.Blog
	blogOrder    []string
	contacts     []domain.ContactMessage

	profiles     map[string]domain.ArtisanProfile
	works        map[string]domain.Work
	workOrder    []string
	achievements map[string]domain.Achievement
	achOrder     []string
	links        map[string]domain.SocialLinks
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]domain.User),
		email:        make(map[string]string),
		products:     make(map[string]domain.Product),
		blogs:        make(map[string]domain.Blog),
		profiles:     make(map[string]domain.ArtisanProfile),
		works:        make(map[string]domain.Work),
		achievements: make(map[string]domain.Achievement),
		links:        make(map[string]domain.SocialLinks),
	}
}

func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return nil
}

func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.email[email]
	return ok, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.email[email]
	if !ok {
		return domain.User{}, false, nil
	}
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *MemoryStore) SaveProduct(p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.products[p.ID]; !exists {
		m.productOrder = append(m.productOrder, p.ID)
	}
	m.products[p.ID] = p
	return nil
}

func (m *MemoryStore) ListProducts() ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Product, 0, len(m.productOrder))
	for i := len(m.productOrder) - 1; i >= 0; i-- {
		if p, ok := m.products[m.productOrder[i]]; ok {
			res = append(res, p)
		}
	}
	return res, nil
}

func (m *MemoryStore) ListProductsByArtisan(artisanID string) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Product, 0)
	for i := len(m.productOrder) - 1; i >= 0; i-- {
		if p, ok := m.products[m.productOrder[i]]; ok && p.ArtisanID == artisanID {
			res = append(res, p)
		}
	}
	return res, nil
}

func (m *MemoryStore) GetProduct(id string) (domain.Product, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	return p, ok, nil
}

func (m *MemoryStore) UpdateProduct(p domain.Product) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.products[p.ID]
	if !ok || existing.ArtisanID != p.ArtisanID {
		return false, nil
	}
	p.CreatedAt = existing.CreatedAt
	m.products[p.ID] = p
	return true, nil
}

func (m *MemoryStore) DeleteProduct(id, artisanID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.products[id]
	if !ok || existing.ArtisanID != artisanID {
		return false, nil
	}
	delete(m.products, id)
	return true, nil
}

func (m *MemoryStore) SaveOrder(o domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, o)
	return nil
}

func (m *MemoryStore) ListOrdersByBuyer(buyerID string) ([]domain.BuyerOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.BuyerOrder, 0)
	for i := len(m.orders) - 1; i >= 0; i-- {
		o := m.orders[i]
		if o.BuyerID != buyerID {
			continue
		}
		row := domain.BuyerOrder{
			OrderID:    o.ID,
			Quantity:   o.Quantity,
			TotalPrice: o.TotalPrice,
			Status:     o.Status,
			CreatedAt:  o.CreatedAt,
		}
		if p, ok := m.products[o.ProductID]; ok {
			row.ProductTitle = p.Title
			row.ProductImage = p.ImageURL
		}
		if u, ok := m.users[o.ArtisanID]; ok {
			row.ArtisanName = u.Name
		}
		res = append(res, row)
	}
	return res, nil
}

func (m *MemoryStore) SaveBlog(b domain.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.blogs[b.ID]; !exists {
		m.blogOrder = append(m.blogOrder, b.ID)
	}
	m.blogs[b.ID] = b
	return nil
}

func (m *MemoryStore) ListBlogs() ([]domain.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Blog, 0, len(m.blogOrder))
	for i := len(m.blogOrder) - 1; i >= 0; i-- {
		if b, ok := m.blogs[m.blogOrder[i]]; ok {
			res = append(res, b)
		}
	}
	return res, nil
}

func (m *MemoryStore) GetBlog(id string) (domain.Blog, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blogs[id]
	return b, ok, nil
}

func (m *MemoryStore) DeleteBlog(id, authorID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.blogs[id]
	if !ok || existing.AuthorID != authorID {
		return false, nil
	}
	delete(m.blogs, id)
	return true, nil
}

func (m *MemoryStore) SaveContactMessage(c domain.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = append(m.contacts, c)
	return nil
}

func (m *MemoryStore) UpsertProfile(p domain.ArtisanProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ArtisanID] = p
	return nil
}

func (m *MemoryStore) GetProfile(artisanID string) (domain.ArtisanProfile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[artisanID]
	return p, ok, nil
}

func (m *MemoryStore) UpsertWork(w domain.Work) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, exists := m.works[w.ID]
	if exists && existing.ArtisanID != w.ArtisanID {
		// foreign id collision: same no-op the relational guard produces
		return nil
	}
	if !exists {
		m.workOrder = append(m.workOrder, w.ID)
	} else {
		w.CreatedAt = existing.CreatedAt
	}
	m.works[w.ID] = w
	return nil
}

func (m *MemoryStore) ListWorksByArtisan(artisanID string) ([]domain.Work, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Work, 0)
	for _, id := range m.workOrder {
		if w, ok := m.works[id]; ok && w.ArtisanID == artisanID {
			res = append(res, w)
		}
	}
	return res, nil
}

func (m *MemoryStore) DeleteWork(workID, artisanID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.works[workID]; ok && w.ArtisanID == artisanID {
		delete(m.works, workID)
	}
	return nil
}

func (m *MemoryStore) UpsertAchievement(a domain.Achievement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, exists := m.achievements[a.ID]
	if exists && existing.ArtisanID != a.ArtisanID {
		return nil
	}
	if !exists {
		m.achOrder = append(m.achOrder, a.ID)
	} else {
		a.CreatedAt = existing.CreatedAt
	}
	m.achievements[a.ID] = a
	return nil
}

func (m *MemoryStore) ListAchievementsByArtisan(artisanID string) ([]domain.Achievement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Achievement, 0)
	for _, id := range m.achOrder {
		if a, ok := m.achievements[id]; ok && a.ArtisanID == artisanID {
			res = append(res, a)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Year > res[j].Year })
	return res, nil
}

func (m *MemoryStore) DeleteAchievement(achievementID, artisanID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.achievements[achievementID]; ok && a.ArtisanID == artisanID {
		delete(m.achievements, achievementID)
	}
	return nil
}

func (m *MemoryStore) UpsertSocialLinks(l domain.SocialLinks) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[l.ArtisanID] = l
	return nil
}

func (m *MemoryStore) GetSocialLinks(artisanID string) (domain.SocialLinks, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.links[artisanID]
	return l, ok, nil
}
