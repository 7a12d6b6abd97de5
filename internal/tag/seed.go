package tag

// SeedTags is the initial taxonomy loaded by `gtt seed`. The catalog can be
// extended at runtime through the admin tag manager.
var SeedTags = []Definition{
	// Trip Style
	{Slug: "beaches-and-coast", Label: "Beaches & Coast", Category: CategoryTripStyle},
	{Slug: "safari-and-wildlife", Label: "Safari & Wildlife", Category: CategoryTripStyle},
	{Slug: "cultural-immersion", Label: "Cultural Immersion", Category: CategoryTripStyle},
	{Slug: "history-and-heritage", Label: "History & Heritage", Category: CategoryTripStyle},
	{Slug: "art-and-architecture", Label: "Art & Architecture", Category: CategoryTripStyle},
	{Slug: "food-and-wine", Label: "Food & Wine", Category: CategoryTripStyle},
	{Slug: "adventure-and-outdoors", Label: "Adventure & Outdoors", Category: CategoryTripStyle},
	{Slug: "relaxation-and-wellness", Label: "Relaxation & Wellness", Category: CategoryTripStyle},
	{Slug: "off-the-beaten-path", Label: "Off the Beaten Path", Category: CategoryTripStyle},

	// Activities
	{Slug: "hiking-and-trekking", Label: "Hiking & Trekking", Category: CategoryActivities},
	{Slug: "diving-and-snorkeling", Label: "Diving & Snorkeling", Category: CategoryActivities},
	{Slug: "water-sports", Label: "Water Sports", Category: CategoryActivities},
	{Slug: "scenic-train-journeys", Label: "Scenic Train Journeys", Category: CategoryActivities},
	{Slug: "whale-watching", Label: "Whale Watching", Category: CategoryActivities},
	{Slug: "birding", Label: "Birding", Category: CategoryActivities},
	{Slug: "photography", Label: "Photography", Category: CategoryActivities},

	// Traveler Profile
	{Slug: "honeymoon-and-romance", Label: "Honeymoon & Romance", Category: CategoryTravelerProfile},
	{Slug: "family-friendly", Label: "Family Friendly", Category: CategoryTravelerProfile},
	{Slug: "multigenerational", Label: "Multigenerational", Category: CategoryTravelerProfile},
	{Slug: "solo-traveler", Label: "Solo Traveler", Category: CategoryTravelerProfile},
	{Slug: "first-international-trip", Label: "First International Trip", Category: CategoryTravelerProfile},
	{Slug: "bucket-list", Label: "Bucket List / Once-in-a-Lifetime", Category: CategoryTravelerProfile},
	{Slug: "luxury", Label: "Luxury", Category: CategoryTravelerProfile},
	{Slug: "active-seniors", Label: "Active Seniors", Category: CategoryTravelerProfile},

	// Landscape
	{Slug: "mountains-and-alpine", Label: "Mountains & Alpine", Category: CategoryLandscape},
	{Slug: "desert-and-dunes", Label: "Desert & Dunes", Category: CategoryLandscape},
	{Slug: "tropical-islands", Label: "Tropical Islands", Category: CategoryLandscape},
}
