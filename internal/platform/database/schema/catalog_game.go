package schema

// CatalogGameTable represents the 'catalog.game' table
type CatalogGameTable struct {
	Table            string
	ID               string
	Title            string
	Description      string
	Genre            string
	Tags             string
	Platforms        string
	PlaytimeEstimate string
	Developer        string
	Publisher        string
	GameMode         string
	ReleaseDate      string
	ReviewRating     string
	CoverImage       string
	CreatedAt        string
	UpdatedAt        string
}

// CatalogGame is the schema definition for catalog.game
var CatalogGame = CatalogGameTable{
	Table:            "catalog.game",
	ID:               "id",
	Title:            "title",
	Description:      "description",
	Genre:            "genre",
	Tags:             "tags",
	Platforms:        "platforms",
	PlaytimeEstimate: "playtime_estimate",
	Developer:        "developer",
	Publisher:        "publisher",
	GameMode:         "game_mode",
	ReleaseDate:      "release_date",
	ReviewRating:     "review_rating",
	CoverImage:       "cover_image",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}

func (t CatalogGameTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Genre, t.Tags, t.Platforms,
		t.PlaytimeEstimate, t.Developer, t.Publisher, t.GameMode,
		t.ReleaseDate, t.ReviewRating, t.CoverImage, t.CreatedAt, t.UpdatedAt,
	}
}
