package models

// OpeningScreen açılış ekranındaki metinler.
type OpeningScreen struct {
	Welcome      string `json:"welcome"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Brand        string `json:"brand"`
	SealInitials string `json:"sealInitials"`
}

type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	MapURL  string `json:"mapUrl"`
}

type LinkItem struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type BridalPartyMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image"`
}

type MenuItem struct {
	Course      string `json:"course"`
	Dish        string `json:"dish"`
	Description string `json:"description"`
}

type TimelineItem struct {
	Time        string `json:"time"`
	Event       string `json:"event"`
	Description string `json:"description"`
}

// ChecklistItem planlama listesindeki bir görev; SiteContent içinde yaşar.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// SiteContent sitedeki tüm düzenlenebilir metinleri ve dizileri tutan tekil belgedir.
// Her düzenlemede bütün olarak yeniden yazılır.
type SiteContent struct {
	OpeningScreen           OpeningScreen       `json:"openingScreen"`
	CoupleNames             string              `json:"coupleNames"`
	HeroTitle               string              `json:"heroTitle"`
	HeroImageURL            string              `json:"heroImageUrl"`
	AdminPanelTitle         string              `json:"adminPanelTitle"`
	AdminPanelSubtitle      string              `json:"adminPanelSubtitle"`
	WeddingDate             string              `json:"weddingDate"`
	WeddingTime             string              `json:"weddingTime"`
	CountdownDate           string              `json:"countdownDate"`
	Venues                  []Venue             `json:"venues"`
	HeroTagline             string              `json:"heroTagline"`
	OurStory                string              `json:"ourStory"`
	RegistryInfo            string              `json:"registryInfo"`
	RegistryLinks           []LinkItem          `json:"registryLinks"`
	SocialLinks             []LinkItem          `json:"socialLinks"`
	GalleryImages           []string            `json:"galleryImages"`
	GooglePhotosLink        string              `json:"googlePhotosLink"`
	GooglePhotosLinkEnabled *bool               `json:"googlePhotosLinkEnabled,omitempty"`
	TimelineItems           []TimelineItem      `json:"timelineItems"`
	Checklist               []ChecklistItem     `json:"checklist"`
	MusicURL                string              `json:"musicUrl"`
	DressCode               string              `json:"dressCode"`
	BridalParty             []BridalPartyMember `json:"bridalParty"`
	FooterText              string              `json:"footerText,omitempty"`
	Menu                    []MenuItem          `json:"menu"`
}

// ShowGooglePhotosLink alan hiç ayarlanmadıysa link gösterilir.
func (c SiteContent) ShowGooglePhotosLink() bool {
	return c.GooglePhotosLinkEnabled == nil || *c.GooglePhotosLinkEnabled
}

// Clone dizileri paylaşmayan bir kopya döndürür.
func (c SiteContent) Clone() SiteContent {
	out := c
	out.Venues = append([]Venue(nil), c.Venues...)
	out.RegistryLinks = append([]LinkItem(nil), c.RegistryLinks...)
	out.SocialLinks = append([]LinkItem(nil), c.SocialLinks...)
	out.GalleryImages = append([]string(nil), c.GalleryImages...)
	out.TimelineItems = append([]TimelineItem(nil), c.TimelineItems...)
	out.Checklist = append([]ChecklistItem(nil), c.Checklist...)
	out.BridalParty = append([]BridalPartyMember(nil), c.BridalParty...)
	out.Menu = append([]MenuItem(nil), c.Menu...)
	if c.GooglePhotosLinkEnabled != nil {
		v := *c.GooglePhotosLinkEnabled
		out.GooglePhotosLinkEnabled = &v
	}
	return out
}
