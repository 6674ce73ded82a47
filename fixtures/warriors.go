package fixtures

import (
	"time"

	"github.com/pridkett/airsense/warriors"
)

const avatarBase = "https://api.dicebear.com/7.x/avataaars/svg?seed="

var User = warriors.Profile{
	ID:            "user123",
	Name:          "Rahul Sharma",
	Avatar:        avatarBase + "Rahul",
	Level:         7,
	LevelName:     "Air Guardian",
	Points:        2847,
	Achievements:  []string{"First Report", "Week Streak", "Tree Planter", "Community Hero"},
	City:          "Hyderabad",
	HealthProfile: "adult",
	JoinedDate:    date(2024, time.June, 15),
}

var Leaderboard = []warriors.LeaderboardEntry{
	{Rank: 1, UserID: "user456", Name: "Priya Reddy", Points: 4521, WeeklyChange: 145, Avatar: avatarBase + "Priya"},
	{Rank: 2, UserID: "user789", Name: "Arjun Patel", Points: 4234, WeeklyChange: 89, Avatar: avatarBase + "Arjun"},
	{Rank: 3, UserID: "user234", Name: "Sneha Kumar", Points: 3987, WeeklyChange: 234, Avatar: avatarBase + "Sneha"},
	{Rank: 4, UserID: "user567", Name: "Vikram Singh", Points: 3654, WeeklyChange: -23, Avatar: avatarBase + "Vikram"},
	{Rank: 5, UserID: "user890", Name: "Ananya Iyer", Points: 3421, WeeklyChange: 167, Avatar: avatarBase + "Ananya"},
	{Rank: 6, UserID: "user321", Name: "Rohan Gupta", Points: 3198, WeeklyChange: 45, Avatar: avatarBase + "Rohan"},
	{Rank: 7, UserID: "user654", Name: "Kavya Nair", Points: 2987, WeeklyChange: 78, Avatar: avatarBase + "Kavya"},
	{Rank: 8, UserID: "user987", Name: "Aditya Sharma", Points: 2847, WeeklyChange: 123, Avatar: avatarBase + "Aditya"},
	{Rank: 9, UserID: "user147", Name: "Meera Joshi", Points: 2654, WeeklyChange: 56, Avatar: avatarBase + "Meera"},
	{Rank: 10, UserID: "user258", Name: "Karthik Rao", Points: 2456, WeeklyChange: 91, Avatar: avatarBase + "Karthik"},
}

var Missions = []warriors.Mission{
	{ID: "m1", Title: "Report 5 Pollution Sources", Description: "Help us identify pollution hotspots", Progress: 3, Total: 5, Reward: "50 points + Air Quality Badge", Icon: "camera"},
	{ID: "m2", Title: "Carpool 3 Times This Week", Description: "Reduce vehicular emissions", Progress: 1, Total: 3, Reward: "30 points + Eco Warrior Badge", Icon: "car"},
	{ID: "m3", Title: "Plant a Tree & Upload Photo", Description: "Contribute to green cover", Progress: 0, Total: 1, Reward: "100 points + Tree Planter Badge + Free Sapling", Icon: "tree"},
	{ID: "m4", Title: "Share Air Quality 5 Times", Description: "Spread awareness on social media", Progress: 2, Total: 5, Reward: "25 points + Influencer Badge", Icon: "share"},
}

var Reports = []warriors.Report{
	{
		ID:          "report_1",
		UserID:      "user123",
		Type:        "construction",
		Severity:    4,
		Location:    "Madhapur Junction",
		Coordinates: [2]float64{17.4485, 78.3908},
		ImageURL:    "https://images.unsplash.com/photo-1504307651254-35680f356dfd?w=400",
		Description: "Heavy dust from construction site",
		Verified:    true,
		Age:         2 * time.Hour,
		Upvotes:     23,
	},
	{
		ID:          "report_2",
		UserID:      "user456",
		Type:        "vehicular",
		Severity:    3,
		Location:    "Banjara Hills",
		Coordinates: [2]float64{17.4239, 78.4738},
		ImageURL:    "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400",
		Description: "Heavy traffic congestion",
		Verified:    true,
		Age:         5 * time.Hour,
		Upvotes:     17,
	},
	{
		ID:          "report_3",
		UserID:      "user789",
		Type:        "burning",
		Severity:    5,
		Location:    "Kukatpally",
		Coordinates: [2]float64{17.4948, 78.3985},
		ImageURL:    "https://images.unsplash.com/photo-1611273426858-450d8e3c9fce?w=400",
		Description: "Waste burning in open area",
		Verified:    false,
		Age:         8 * time.Hour,
		Upvotes:     34,
	},
}
