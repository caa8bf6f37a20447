package dto

// HomeResponse is the landing page payload: the latest global announcements
// and the highest rated clubs.
type HomeResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
	FeaturedClubs []ClubResponse         `json:"featuredClubs"`
}
