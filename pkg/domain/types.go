package domain

import "time"

type UserRole string

const (
	RoleBuyer   UserRole = "buyer"
	RoleArtisan UserRole = "artisan"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CraftType    string    `json:"craft_type,omitempty"`
	Location     string    `json:"location,omitempty"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID             string    `json:"id"`
	ArtisanID      string    `json:"artisan_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Category       string    `json:"category"`
	CulturalStory  string    `json:"cultural_story,omitempty"`
	IsCustomizable bool      `json:"is_customizable"`
	StockCount     int       `json:"stock_count"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

type Order struct {
	ID         string      `json:"id"`
	BuyerID    string      `json:"buyer_id"`
	ProductID  string      `json:"product_id"`
	ArtisanID  string      `json:"artisan_id"`
	Quantity   int         `json:"quantity"`
	TotalPrice float64     `json:"total_price"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// BuyerOrder is one row of the buyer's order history, joined with product
// title/image and the artisan display name.
type BuyerOrder struct {
	OrderID      string      `json:"order_id"`
	Quantity     int         `json:"quantity"`
	TotalPrice   float64     `json:"total_price"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	ProductTitle string      `json:"product_title"`
	ProductImage string      `json:"product_image,omitempty"`
	ArtisanName  string      `json:"artisan_name"`
}

type Blog struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CoverImage string    `json:"cover_image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ArtisanProfile is the single profile row an artisan owns (at most one per
// artisan id). Every write overwrites all eleven attribute columns; a caller
// that omits a field clears it.
type ArtisanProfile struct {
	ArtisanID      string    `json:"artisan_id"`
	Name           string    `json:"name"`
	ProfileImage   string    `json:"profile_image,omitempty"`
	CoverImage     string    `json:"cover_image,omitempty"`
	Tagline        string    `json:"tagline,omitempty"`
	Location       string    `json:"location,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	About          string    `json:"about,omitempty"`
	Experience     string    `json:"experience,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Language       string    `json:"language,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Work struct {
	ID                string    `json:"work_id"`
	ArtisanID         string    `json:"artisan_id"`
	Title             string    `json:"title"`
	Category          string    `json:"category,omitempty"`
	Description       string    `json:"description,omitempty"`
	ImageURLs         []string  `json:"image_urls"`
	PriceRange        string    `json:"price_range,omitempty"`
	CreationDate      string    `json:"creation_date,omitempty"`
	AvailableForOrder bool      `json:"available_for_order"`
	CreatedAt         time.Time `json:"created_at"`
}

type Achievement struct {
	ID          string    `json:"achievement_id"`
	ArtisanID   string    `json:"artisan_id"`
	Title       string    `json:"title"`
	Year        int       `json:"year,omitempty"`
	Description string    `json:"description,omitempty"`
	AwardImage  string    `json:"award_image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SocialLinks is a one-to-one row keyed by artisan id. Upserts overwrite all
// four platform columns every call; clearing a platform is writing "".
type SocialLinks struct {
	ArtisanID string `json:"-"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Youtube   string `json:"youtube"`
	Website   string `json:"website"`
}

// PortfolioDocument is the derived read-time view for one artisan: profile
// columns and social link fields flattened at the top level, plus ordered
// works and achievements. It is never stored and is recomputed on every read.
type PortfolioDocument struct {
	ArtisanProfile
	SocialLinks
	Works        []Work        `json:"works"`
	Achievements []Achievement `json:"achievements"`
}
