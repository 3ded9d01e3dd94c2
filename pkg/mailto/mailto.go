// Package mailto misafirlere gönderilecek e-postaları "mailto:" URI'si olarak hazırlar.
// Gönderim kullanıcının e-posta istemcisine bırakılır; burada hiçbir şey gönderilmez.
package mailto

import (
	"fmt"
	"net/url"
	"strings"

	"dugun.site/models"
)

// Event e-posta metinlerinde kullanılan etkinlik bilgileri.
type Event struct {
	CoupleNames string
	Date        string
	Time        string
	Venue       string
	SiteURL     string
}

// EventFromContent içerik belgesinden etkinlik bilgilerini çıkarır.
func EventFromContent(c models.SiteContent, siteURL string) Event {
	e := Event{CoupleNames: c.CoupleNames, Date: c.WeddingDate, Time: c.WeddingTime, SiteURL: siteURL}
	if len(c.Venues) > 0 {
		e.Venue = c.Venues[0].Name
	}
	if e.CoupleNames == "" {
		e.CoupleNames = models.CanonicalCoupleNames
	}
	return e
}

// Encode JavaScript encodeURIComponent ile uyumlu kodlama (boşluk %20).
func Encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func build(to, bcc, subject, body string) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(to)
	b.WriteString("?")
	if bcc != "" {
		b.WriteString("bcc=")
		b.WriteString(bcc)
		b.WriteString("&")
	}
	b.WriteString("subject=")
	b.WriteString(Encode(subject))
	b.WriteString("&body=")
	b.WriteString(Encode(body))
	return b.String()
}

func orTBD(s string) string {
	if strings.TrimSpace(s) == "" {
		return "TBD"
	}
	return s
}

func attendingText(s models.RSVPStatus) string {
	switch s {
	case models.RSVPStatusAttending:
		return "Yes"
	case models.RSVPStatusNotAttending:
		return "No"
	}
	return "Maybe"
}

// Confirmation LCV onay e-postası.
func Confirmation(r models.RSVP, ev Event) string {
	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\nThank you for your RSVP!\n\n", r.Name)
	body.WriteString("**Your RSVP Details:**\n")
	fmt.Fprintf(&body, "Name: %s\n", r.Name)
	email := r.Email
	if email == "" {
		email = "Not provided"
	}
	fmt.Fprintf(&body, "Email: %s\n", email)
	fmt.Fprintf(&body, "Attending: %s\n", attendingText(r.Status))
	if r.PlusOne {
		name := r.PlusOneName
		if name == "" {
			name = "Yes"
		}
		fmt.Fprintf(&body, "Plus One: %s\n", name)
	}
	if r.Dietary != "" {
		fmt.Fprintf(&body, "Dietary Restrictions: %s\n", r.Dietary)
	}
	if r.Notes != "" {
		fmt.Fprintf(&body, "Message: %s\n", r.Notes)
	}
	fmt.Fprintf(&body, "\nWe look forward to celebrating with you on %s!\n\n", orTBD(ev.Date))
	body.WriteString("**Event Details:**\n")
	fmt.Fprintf(&body, "Date: %s\nTime: %s\nVenue: %s\n\n", orTBD(ev.Date), orTBD(ev.Time), orTBD(ev.Venue))
	body.WriteString("For any questions or changes, please reply to this email.\n\n")
	fmt.Fprintf(&body, "With love,\n%s", ev.CoupleNames)

	subject := fmt.Sprintf("RSVP Confirmation - %s Wedding", ev.CoupleNames)
	return build(r.Email, "", subject, body.String())
}

// FollowUpReminder tek misafire hatırlatma.
func FollowUpReminder(r models.RSVP, ev Event) string {
	site := ev.SiteURL
	if site == "" {
		site = "our wedding website"
	}
	body := fmt.Sprintf("Dear %s,\n\n"+
		"We hope this email finds you well!\n\n"+
		"We noticed you haven't confirmed your attendance for our wedding yet. "+
		"We'd love to have you celebrate with us on %s.\n\n"+
		"Please let us know if you'll be able to join us by visiting our wedding website:\n%s\n\n"+
		"If you have any questions or need more information, feel free to reach out!\n\n"+
		"Looking forward to hearing from you.\n\n"+
		"Warmest regards,\n%s", r.Name, orTBD(ev.Date), site, ev.CoupleNames)
	subject := fmt.Sprintf("Friendly Reminder - %s Wedding RSVP", ev.CoupleNames)
	return build(r.Email, "", subject, body)
}

// BatchReminder birden çok misafire gizli kopya (bcc) ile hatırlatma.
func BatchReminder(rsvps []models.RSVP, ev Event) string {
	body := fmt.Sprintf("Dear Friends and Family,\n\n"+
		"We hope this email finds you well!\n\n"+
		"We're reaching out to remind you about our upcoming wedding on %s. "+
		"If you haven't already, please RSVP through our wedding website at your earliest convenience.\n\n"+
		"We can't wait to celebrate this special day with you!\n\n"+
		"If you need any additional information, please don't hesitate to reach out.\n\n"+
		"With love,\n%s", orTBD(ev.Date), ev.CoupleNames)
	subject := fmt.Sprintf("Friendly Reminder - %s Wedding RSVP", ev.CoupleNames)
	return build("", Recipients(rsvps), subject, body)
}

// Compose serbest konu ve mesajla toplu e-posta.
func Compose(rsvps []models.RSVP, subject, message string) string {
	return build("", Recipients(rsvps), subject, message)
}

// Recipients e-postası olan misafirlerin adreslerini virgülle birleştirir.
func Recipients(rsvps []models.RSVP) string {
	emails := make([]string, 0, len(rsvps))
	for _, r := range rsvps {
		if e := strings.TrimSpace(r.Email); e != "" {
			emails = append(emails, e)
		}
	}
	return strings.Join(emails, ",")
}
