package repository

import (
	"context"
	"time"

	"github.com/spec-kit/workshop-service/internal/domain"
)

// SampleWorkshops returns the fixed catalogue loaded at startup.
func SampleWorkshops() []domain.Workshop {
	return []domain.Workshop{
		{
			Title:              "Introduction to Web Development",
			Description:        "Learn the basics of HTML, CSS, and JavaScript to build your first website from scratch. This workshop is perfect for complete beginners who want to get started with web development. You'll learn how to structure web pages with HTML, style them with CSS, and add interactivity with JavaScript. By the end of the workshop, you'll have created a simple webpage and understand the fundamental concepts of web development.",
			Summary:            "Learn the basics of HTML, CSS, and JavaScript to build your first website from scratch.",
			ImageURL:           "https://images.unsplash.com/photo-1522071820081-009f0129c71c?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=800&q=80",
			Category:           domain.CategoryTechnology,
			Date:               time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC),
			StartTime:          "1:00 PM",
			EndTime:            "3:00 PM",
			Location:           "Online (Zoom)",
			Capacity:           50,
			Instructor:         "Sarah Johnson",
			InstructorTitle:    "Senior Web Developer at TechCorp",
			InstructorBio:      "Sarah has 8+ years of experience in web development and has taught over 50 workshops to more than 1,000 students.",
			InstructorImageURL: "https://randomuser.me/api/portraits/women/45.jpg",
			LearningPoints: []string{
				"HTML fundamentals and page structure",
				"CSS styling and layout techniques",
				"JavaScript basics for interactivity",
				"How to create responsive designs",
				"Best practices for web development",
			},
			Requirements: []string{
				"No prior coding experience needed",
				"A laptop with a modern web browser",
				"Text editor (VS Code recommended)",
				"Stable internet connection for the live session",
			},
			Status: domain.WorkshopStatusUpcoming,
		},
		{
			Title:              "UX Design Fundamentals",
			Description:        "Discover the key principles of user experience design and learn how to create user-centered interfaces that delight your users. This hands-on workshop will cover the UX design process from research to implementation.",
			Summary:            "Discover the key principles of user experience design and learn how to create user-centered interfaces.",
			ImageURL:           "https://images.unsplash.com/photo-1551434678-e076c223a692?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=800&q=80",
			Category:           domain.CategoryDesign,
			Date:               time.Date(2023, time.June, 22, 0, 0, 0, 0, time.UTC),
			StartTime:          "2:00 PM",
			EndTime:            "5:00 PM",
			Location:           "San Francisco",
			Capacity:           20,
			Instructor:         "Michael Chen",
			InstructorTitle:    "UX Designer at DesignStudio",
			InstructorBio:      "Michael has worked on UX design for major tech companies and has a passion for teaching design principles to newcomers.",
			InstructorImageURL: "https://randomuser.me/api/portraits/men/32.jpg",
			LearningPoints: []string{
				"UX research methods",
				"User personas and journey mapping",
				"Wireframing and prototyping",
				"Usability testing",
				"Design systems",
			},
			Requirements: []string{
				"Basic computer skills",
				"An interest in design",
				"Pen and paper for sketching",
				"Optional: design software",
			},
			Status: domain.WorkshopStatusUpcoming,
		},
		{
			Title:              "Digital Marketing Strategies",
			Description:        "Learn effective digital marketing tactics to grow your audience and convert leads into customers. This comprehensive workshop covers social media, content marketing, SEO, and email campaigns.",
			Summary:            "Learn effective digital marketing tactics to grow your audience and convert leads into customers.",
			ImageURL:           "https://images.unsplash.com/photo-1556761175-5973dc0f32e7?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=800&q=80",
			Category:           domain.CategoryBusiness,
			Date:               time.Date(2023, time.June, 25, 0, 0, 0, 0, time.UTC),
			StartTime:          "10:00 AM",
			EndTime:            "2:00 PM",
			Location:           "Online",
			Capacity:           40,
			Instructor:         "Amanda Ross",
			InstructorTitle:    "Marketing Director",
			InstructorBio:      "Amanda has led marketing campaigns for startups and Fortune 500 companies, with expertise in digital growth strategies.",
			InstructorImageURL: "https://randomuser.me/api/portraits/women/68.jpg",
			LearningPoints: []string{
				"Social media strategy",
				"Content marketing fundamentals",
				"SEO best practices",
				"Email marketing campaigns",
				"Analytics and measurement",
			},
			Requirements: []string{
				"Basic marketing knowledge",
				"A laptop or tablet",
				"Access to your business social accounts (optional)",
			},
			Status: domain.WorkshopStatusDraft,
		},
	}
}

// SeedSampleWorkshops inserts the sample catalogue unless the store already
// holds workshops. It reports how many records were inserted.
func SeedSampleWorkshops(ctx context.Context, workshops WorkshopRepository) (int, error) {
	existing, err := workshops.GetAllWorkshops(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	inserted := 0
	for _, sample := range SampleWorkshops() {
		if _, err := workshops.CreateWorkshop(ctx, sample); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
