package services

import "dugun.site/models"

// IsLegacyBranded içerikte eski marka adlarından biri kullanılıyor mu?
func IsLegacyBranded(c models.SiteContent) bool {
	for _, legacy := range models.LegacyCoupleNames {
		if c.CoupleNames == legacy || c.OpeningScreen.Brand == legacy {
			return true
		}
	}
	return false
}

// MigrateLegacyBranding eski marka adlarını doğru yazımla değiştirir. İçerik zaten
// doğruysa aynen döner ve changed=false olur; tekrar tekrar çalıştırılabilir.
func MigrateLegacyBranding(c models.SiteContent) (out models.SiteContent, changed bool) {
	if !IsLegacyBranded(c) {
		return c, false
	}
	out = c.Clone()
	out.CoupleNames = models.CanonicalCoupleNames
	out.HeroTitle = models.CanonicalCoupleNames
	out.OpeningScreen.Title = models.CanonicalCoupleNames
	out.OpeningScreen.Brand = models.CanonicalCoupleNames
	out.OpeningScreen.SealInitials = models.CanonicalSealInitials
	out.AdminPanelTitle = models.CanonicalPanelTitle
	return out, true
}
