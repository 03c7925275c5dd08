package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"skillswap/domain"
	"skillswap/services"
)

type demoUser struct {
	name         string
	email        string
	bio          string
	location     string
	availability string
	level        string
	kind         domain.ProfileKind
	skills       []string
	wantToLearn  []string
	post         *demoPost
}

type demoPost struct {
	offered     string
	wanted      string
	description string
}

var demoUsers = []demoUser{
	{
		name: "Sarah Chen", email: "sarah.chen@example.com",
		bio:      "Full-stack developer with 5+ years experience. Love teaching React and Python!",
		location: "San Francisco, CA", availability: "weekends", level: "Expert",
		kind:   domain.KindTutor,
		skills: []string{"React", "Python", "JavaScript", "Node.js"},
		post: &demoPost{
			offered: "React", wanted: "Machine Learning",
			description: "Happy to pair on React projects in exchange for ML mentoring.",
		},
	},
	{
		name: "Mike Rodriguez", email: "mike.rodriguez@example.com",
		bio:      "Guitar enthusiast looking to learn music production. Can teach acoustic guitar basics.",
		location: "Austin, TX", availability: "evenings", level: "Intermediate",
		kind:        domain.KindLearner,
		skills:      []string{"Guitar", "Music Theory"},
		wantToLearn: []string{"Music Production", "Audio Engineering"},
		post: &demoPost{
			offered: "Guitar", wanted: "Music Production",
			description: "Acoustic guitar lessons for anyone who can get me started with a DAW.",
		},
	},
	{
		name: "Emily Davis", email: "emily.davis@example.com",
		bio:      "Digital marketing specialist passionate about helping small businesses grow online.",
		location: "New York, NY", availability: "flexible", level: "Expert",
		kind:   domain.KindTutor,
		skills: []string{"Digital Marketing", "SEO", "Social Media", "Content Writing"},
	},
	{
		name: "Lisa Park", email: "lisa.park@example.com",
		bio:      "Professional photographer with expertise in portrait and landscape photography.",
		location: "Los Angeles, CA", availability: "weekends", level: "Expert",
		kind:   domain.KindTutor,
		skills: []string{"Photography", "Lightroom", "Photoshop"},
	},
}

// seedDemo populates a fresh database with a browsable marketplace:
// profiles in the directory, a few posts on the feed, and one greeting
// exchanged between the first two users.
func seedDemo(ctx context.Context, log *slog.Logger,
	auth *services.AuthService, profiles *services.ProfileService,
	feed *services.FeedService, chat *services.ChatService,
	sessions *services.SessionService, directory *services.DirectoryService) error {

	log.Info("Seeding demo marketplace")

	ids := make([]string, 0, len(demoUsers))
	for _, u := range demoUsers {
		if err := auth.SignUp(ctx, u.name, u.email, "letmelearn42"); err != nil {
			return fmt.Errorf("sign up %s: %w", u.email, err)
		}
		self, _ := auth.CurrentUser()
		ids = append(ids, self.ID)

		err := profiles.Update(ctx, self.ID, services.ProfileEdit{
			Name: u.name, Email: u.email, Bio: u.bio,
			Location: u.location, Availability: u.availability, Level: u.level,
			Kind: u.kind,
		})
		if err != nil {
			return fmt.Errorf("profile %s: %w", u.email, err)
		}
		for _, skill := range u.skills {
			if err := profiles.AddSkill(ctx, self.ID, skill); err != nil {
				return fmt.Errorf("skill %q: %w", skill, err)
			}
		}
		if len(u.wantToLearn) > 0 {
			if err := profiles.SetWantToLearn(ctx, self.ID, u.wantToLearn); err != nil {
				return err
			}
		}
		if u.post != nil {
			err := feed.Create(ctx, u.post.offered, u.post.wanted, u.post.description)
			if err != nil {
				return fmt.Errorf("post for %s: %w", u.email, err)
			}
		}
		auth.SignOut()
	}

	// One greeting and one session request from the second user to the
	// first, so the conversation and request collections are browsable too.
	if len(ids) >= 2 {
		if err := auth.SignIn(ctx, demoUsers[1].email, "letmelearn42"); err != nil {
			return err
		}
		if err := chat.Send(ctx, ids[0], "Hey! Still up for trading guitar lessons?"); err != nil {
			return err
		}
		err := sessions.Request(ctx, services.SessionRequestDraft{
			ToUserID: ids[0],
			Date:     time.Now().AddDate(0, 0, 7),
			TimeSlot: "10:00 AM",
			Message:  "First session on React basics?",
		})
		if err != nil {
			return err
		}
		auth.SignOut()
	}

	tutors, err := directory.Search(ctx, "", services.Filters{Kind: domain.KindTutor}, 50)
	if err != nil {
		return err
	}

	log.Info("Demo seed complete", "users", len(ids), "tutors_indexed", len(tutors))
	return nil
}
