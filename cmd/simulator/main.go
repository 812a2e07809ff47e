package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "seed":
		seedCmd(apiURL, args)
	case "play":
		playCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Dungeon Deck Simulator - Development tool for exercising the game API

USAGE:
  simulator <command> [options]

COMMANDS:
  seed      Create a demo environment with cards, a leader and one dungeon per category
  play      Register a player, start a game, build a deck, fight and claim the reward
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Seed content as the webmaster account (WEBMASTER_NAME on the server)
  simulator seed --admin=webmaster --password=changeme123

  # Play the first environment's large dungeon with a fresh player
  simulator play --category=large_dungeon

  # Play a specific environment
  simulator play --env=<environment-id> --category=simple_encounter`)
}

var demoCards = []Card{
	{Name: "Ember Drake", Damage: 5, Health: 4, Element: "fire"},
	{Name: "Stone Golem", Damage: 3, Health: 7, Element: "earth"},
	{Name: "Tide Caller", Damage: 4, Health: 4, Element: "water"},
	{Name: "Gale Hawk", Damage: 4, Health: 2, Element: "air"},
	{Name: "Cinder Imp", Damage: 2, Health: 2, Element: "fire"},
	{Name: "Mud Crawler", Damage: 1, Health: 3, Element: "earth"},
	{Name: "Reef Guard", Damage: 2, Health: 5, Element: "water"},
	{Name: "Dust Sprite", Damage: 3, Health: 1, Element: "air"},
}

func seedCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	adminName := fs.String("admin", "", "Display name of an admin or webmaster account (required)")
	password := fs.String("password", "", "Password of the admin account (required)")
	envName := fs.String("name", "", "Environment name (default: generated)")
	fs.Parse(args)

	if *adminName == "" || *password == "" {
		fmt.Println("Error: --admin and --password are required")
		fmt.Println("\nUsage: simulator seed --admin=webmaster --password=secret")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Println("=== Dungeon Deck Simulator: Seed ===")
	fmt.Println()

	fmt.Print("Logging in... ")
	auth, err := client.Login(*adminName, *password)
	if err != nil {
		fail(err)
	}
	fmt.Printf("OK (role: %s)\n", auth.User.Role)
	token := auth.AccessToken

	name := *envName
	if name == "" {
		name = fmt.Sprintf("Demo Realm %s", auth.User.ID[:8])
	}

	fmt.Print("Creating environment... ")
	env, err := client.CreateEnvironment(token, name, "Generated by the simulator")
	if err != nil {
		fail(err)
	}
	fmt.Printf("OK (%s)\n", env.ID)

	fmt.Printf("Creating %d cards:\n", len(demoCards))
	cards := make([]*Card, 0, len(demoCards))
	for i, card := range demoCards {
		created, err := client.CreateCard(token, env.ID, card)
		if err != nil {
			fail(err)
		}
		cards = append(cards, created)
		fmt.Printf("  [%d/%d] %s %d/%d %s\n", i+1, len(demoCards), created.Name, created.Damage, created.Health, created.Element)
	}

	fmt.Print("Creating leader... ")
	leader, err := client.CreateLeader(token, env.ID, cards[1].ID, "Golem King", "health_double")
	if err != nil {
		fail(err)
	}
	fmt.Printf("OK (%s, %s)\n", leader.Name, leader.BoostType)

	plain := func(c *Card) Slot { return Slot{CardID: &c.ID} }
	leaderSlot := Slot{LeaderCardID: &leader.ID}

	dungeons := []struct {
		name     string
		category string
		slots    []Slot
	}{
		{"Goblin Ambush", "simple_encounter", []Slot{plain(cards[5])}},
		{"Flooded Crypt", "small_dungeon", []Slot{plain(cards[4]), plain(cards[6]), plain(cards[7]), leaderSlot}},
		{"Molten Keep", "large_dungeon", []Slot{plain(cards[0]), plain(cards[2]), plain(cards[3]), plain(cards[4]), plain(cards[6]), leaderSlot}},
	}

	fmt.Println("Creating dungeons:")
	for _, d := range dungeons {
		created, err := client.CreateDungeon(token, env.ID, d.name, d.category, d.slots)
		if err != nil {
			fail(err)
		}
		fmt.Printf("  %s (%s, %d slots)\n", created.Name, created.Category, len(created.Slots))
	}

	fmt.Println()
	fmt.Println("=========================================")
	fmt.Println("  ENVIRONMENT READY")
	fmt.Println("=========================================")
	fmt.Println()
	fmt.Printf("  Environment ID: %s\n", env.ID)
	fmt.Printf("  Play it with:   simulator play --env=%s\n", env.ID)
	fmt.Println()
}

func playCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	envID := fs.String("env", "", "Environment ID (default: first environment)")
	category := fs.String("category", "simple_encounter", "Dungeon category to fight")
	fs.Parse(args)

	client := NewAPIClient(apiURL)

	fmt.Println("=== Dungeon Deck Simulator: Play ===")
	fmt.Println()

	fmt.Print("Registering player... ")
	auth, err := client.RegisterUser("Adventurer", "testpassword123")
	if err != nil {
		fail(err)
	}
	fmt.Printf("OK (user: %s)\n", auth.User.DisplayName)
	token := auth.AccessToken

	if *envID == "" {
		envs, err := client.ListEnvironments(token)
		if err != nil {
			fail(err)
		}
		if len(envs) == 0 {
			fail(fmt.Errorf("no environments found, run 'simulator seed' first"))
		}
		*envID = envs[0].ID
	}

	dungeons, err := client.ListDungeons(token, *envID)
	if err != nil {
		fail(err)
	}
	var dungeon *Dungeon
	for i := range dungeons {
		if dungeons[i].Category == *category {
			dungeon = &dungeons[i]
			break
		}
	}
	if dungeon == nil {
		fail(fmt.Errorf("no %s dungeon in environment %s", *category, *envID))
	}

	fmt.Print("Starting game... ")
	game, err := client.StartGame(token, *envID, "")
	if err != nil {
		fail(err)
	}
	fmt.Printf("OK (%s)\n", game.Name)

	cards, err := client.ListPlayerCards(token, game.ID)
	if err != nil {
		fail(err)
	}
	if len(cards) < len(dungeon.Slots) {
		fail(fmt.Errorf("game has %d cards but %s needs %d", len(cards), dungeon.Name, len(dungeon.Slots)))
	}

	deckIDs := make([]string, 0, len(dungeon.Slots))
	for _, pc := range cards[:len(dungeon.Slots)] {
		deckIDs = append(deckIDs, pc.ID)
	}

	fmt.Print("Building deck... ")
	deck, err := client.CreateDeck(token, game.ID, "Simulator Deck", deckIDs)
	if err != nil {
		fail(err)
	}
	fmt.Printf("OK (%d cards)\n", len(deckIDs))

	fmt.Printf("Fighting %s... ", dungeon.Name)
	b, err := client.Fight(token, game.ID, deck.ID, dungeon.ID)
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s (%d-%d)\n", b.Outcome, b.PlayerWins, b.DungeonWins)
	for _, c := range b.Clashes {
		fmt.Printf("  #%d %-14s vs %-14s -> %s (%s)\n", c.Order+1, c.PlayerCardName, c.DungeonCardName, c.Winner, c.Reason)
	}

	if b.Outcome != "won" {
		fmt.Println()
		fmt.Println("No reward this time.")
		return
	}

	fmt.Print("Claiming reward... ")
	result, err := client.ClaimReward(token, game.ID, b.ID, deckIDs[0])
	if err != nil {
		fail(err)
	}
	fmt.Printf("OK (+%d damage, +%d health)\n", result.Reward.DamageBoost, result.Reward.HealthBoost)
	fmt.Println()
}

func fail(err error) {
	fmt.Printf("FAILED\n  Error: %v\n", err)
	os.Exit(1)
}
