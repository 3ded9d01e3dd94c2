package models

const (
	// CanonicalCoupleNames markanın doğru yazımı.
	CanonicalCoupleNames  = "Louie & Florie"
	CanonicalSealInitials = "LF"
	CanonicalPanelTitle   = "Louie & Florie CMS"
)

// LegacyCoupleNames eski sürümlerde kaydedilmiş marka adları.
var LegacyCoupleNames = []string{"Florie & Louie", "Simply Louie"}

const unsplash = "https://images.unsplash.com/"

// InitialContent veritabanında henüz belge yokken kullanılan başlangıç içeriği.
func InitialContent() SiteContent {
	enabled := true
	return SiteContent{
		OpeningScreen: OpeningScreen{
			Welcome:      "You are cordially invited to",
			Title:        CanonicalCoupleNames,
			Subtitle:     "A Celebration of Love",
			Brand:        CanonicalCoupleNames,
			SealInitials: CanonicalSealInitials,
		},
		CoupleNames:        CanonicalCoupleNames,
		HeroTitle:          CanonicalCoupleNames,
		HeroImageURL:       unsplash + "photo-1519741497674-611481863552?auto=format&fit=crop&q=80&w=1920",
		AdminPanelTitle:    CanonicalPanelTitle,
		AdminPanelSubtitle: "Wedding Management",
		WeddingDate:        "July 4, 2026",
		WeddingTime:        "3:00 PM",
		CountdownDate:      "2026-07-04T15:00:00",
		Venues: []Venue{
			{
				Name:    "Archdiocesan Shrine of St. Thérèse of the Child Jesus",
				Address: "Gorordo Ave, Lahug, Cebu City",
				MapURL:  "https://www.google.com/maps/search/?api=1&query=Archdiocesan+Shrine+of+St.+Therese+Cebu",
			},
			{
				Name:    "Chateau de Busay Inn & Restaurant",
				Address: "Lower Busay, Cebu City",
				MapURL:  "https://www.google.com/maps/search/?api=1&query=Chateau+de+Busay+Cebu",
			},
		},
		HeroTagline: "Together with their families, invite you to celebrate the union of their souls in an evening of timeless elegance.",
		OurStory:    "Our journey began with a simple hello and blossomed into a lifetime of love. We are so excited to share this new chapter with those who have shaped us.",
		RegistryInfo: "Your presence is the greatest gift we could receive. If you wish to honor us with a gift, we are registered at Williams Sonoma and Pottery Barn, " +
			"or you may contribute to our honeymoon fund for our first trip as husband and wife.",
		RegistryLinks: []LinkItem{
			{Label: "Williams Sonoma", URL: "#"},
			{Label: "Honeymoon Fund", URL: "#"},
		},
		SocialLinks: []LinkItem{
			{Label: "Instagram", URL: "https://instagram.com"},
			{Label: "Facebook", URL: "https://facebook.com"},
			{Label: "Pinterest", URL: "https://pinterest.com"},
		},
		GalleryImages: []string{
			unsplash + "photo-1519741497674-611481863552?auto=format&fit=crop&q=80&w=1200",
			unsplash + "photo-1511795409834-ef04bbd61622?auto=format&fit=crop&q=80&w=1200",
			unsplash + "photo-1583939003579-730e3918a45a?auto=format&fit=crop&q=80&w=1200",
			unsplash + "photo-1519225421980-715cb0215aed?auto=format&fit=crop&q=80&w=1200",
			unsplash + "photo-1544078751-58fee2d8a03b?auto=format&fit=crop&q=80&w=1200",
			unsplash + "photo-1523438885200-e635ba2c371e?auto=format&fit=crop&q=80&w=1200",
			unsplash + "photo-1517457373958-b7bdd4587205?auto=format&fit=crop&q=80&w=1200",
			unsplash + "photo-1522673607200-164883214cde?auto=format&fit=crop&q=80&w=1200",
		},
		GooglePhotosLink:        "https://photos.google.com",
		GooglePhotosLinkEnabled: &enabled,
		TimelineItems: []TimelineItem{
			{Time: "3:00 PM", Event: "The Ceremony", Description: "Shrine of St. Thérèse"},
			{Time: "5:30 PM", Event: "Cocktail Hour", Description: "Chateau de Busay Inn"},
			{Time: "7:00 PM", Event: "Dinner & Toasts", Description: "Chateau de Busay Inn"},
			{Time: "9:00 PM", Event: "Dancing", Description: "Under the Stars"},
		},
		Checklist: []ChecklistItem{
			{ID: "1", Text: "Confirm floral arrangements"},
			{ID: "2", Text: "Finalize seating chart", Completed: true},
			{ID: "3", Text: "Pick up wedding rings"},
		},
		Menu: []MenuItem{
			{Course: "Amuse-Bouche", Dish: "Truffle Arancini", Description: "Wild mushroom risotto spheres with a molten fontina center."},
			{Course: "First Course", Dish: "Burrata & Heirloom Tomato", Description: "Creamy burrata, balsamic pearls, and micro-basil on a bed of gold-flecked heirloom tomatoes."},
			{Course: "Main Course", Dish: "Wagyu Filet Mignon", Description: "Gently seared, served with a bordelaise sauce, asparagus tips, and velvet potato purée."},
			{Course: "Dessert", Dish: "Midnight Chocolate Dome", Description: "Dark Valrhona chocolate, salted caramel core, and edible gold leaf."},
		},
		MusicURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
		DressCode: "Black Tie Optional: We kindly request our guests to dress in formal attire. Gentlemen in tuxedos or dark suits, and ladies in evening gowns or cocktail dresses. " +
			"Warm champagne and gold tones are encouraged.",
		BridalParty: []BridalPartyMember{
			{Name: "Julianna Vance", Role: "Maid of Honor", Image: unsplash + "photo-1544005313-94ddf0286df2"},
			{Name: "Marcus Thorne", Role: "Best Man", Image: unsplash + "photo-1506794778202-cad84cf45f1d"},
			{Name: "Chloe Bennett", Role: "Bridesmaid", Image: unsplash + "photo-1534528741775-53994a69daeb"},
			{Name: "Julian Pierce", Role: "Groomsman", Image: unsplash + "photo-1507003211169-0a1dd7228f2d"},
		},
		FooterText: "Handcrafted with love for the celebration of a lifetime",
	}
}
