package config

import "time"

// Default returns the built-in configuration: Indian defense and space
// sector feeds, the tuned keyword vocabularies, and conservative fetch
// limits.
func Default() Config {
	return Config{
		Feeds: Feeds{
			Defense: []string{
				"https://idrw.org/feed/",
				"https://defence.in/feed/",
				"https://www.indiandefensenews.in/feed/",
			},
			Space: []string{
				"https://www.isro.gov.in/rss.xml",
			},
			BackupDefense: []string{
				"https://www.janes.com/feeds/news.xml",
				"https://ukdefencejournal.org.uk/feed/",
				"https://www.defensedaily.com/rss",
				"https://realcleardefense.com/index.xml",
			},
			BackupSpace: []string{
				"https://spacedaily.com/spacedaily.xml",
				"https://www.spacq.ca/feed/",
				"https://www.nextbigfuture.com/category/space/feed",
			},
		},
		Keywords: Keywords{
			Exclusion: []string{
				"bollywood", "hollywood", "cricket", "ipl", "football",
				"tennis", "badminton", "kabaddi", "olympics", "box office",
				"movie", "film review", "actor", "actress", "celebrity",
				"singer", "album", "concert", "wedding", "fashion week",
				"horoscope", "recipe", "television show",
			},
			HighPriorityDefense: []string{
				"drdo", "hal", "hindustan aeronautics", "tejas", "brahmos",
				"rafale", "sukhoi", "pinaka", "akash missile", "agni-v",
				"prithvi missile", "ins vikrant", "ins vikramaditya",
				"arjun tank", "indian army", "indian navy", "indian air force",
				"ministry of defence", "bharat dynamics", "bharat electronics",
				"ordnance factory",
			},
			HighPrioritySpace: []string{
				"isro", "chandrayaan", "gaganyaan", "aditya-l1", "pslv",
				"gslv", "sslv", "nsil", "in-space", "antrix", "skyroot",
				"agnikul", "vikram-s", "sriharikota",
			},
			Defense: []string{
				"defense", "defence", "military", "missile", "aircraft",
				"army", "navy", "air force", "weapon", "radar", "submarine",
				"artillery", "warship", "fighter jet", "helicopter", "drone",
				"uav", "procurement", "border security", "soldier",
			},
			Space: []string{
				"space", "satellite", "rocket", "launch vehicle", "orbit",
				"spacecraft", "astronaut", "lunar", "interplanetary",
				"payload", "constellation", "spaceport", "ground station",
				"reusable rocket",
			},
			CoreDefense: []string{
				"military", "defense", "defence", "missile", "aircraft",
				"weapon",
			},
			CoreSpace: []string{
				"space", "satellite", "rocket", "spacecraft", "orbit",
			},
		},
		Companies: Companies{
			Defense: []string{
				"HAL", "Hindustan Aeronautics", "DRDO", "BEL", "BHEL",
				"Tata Advanced Systems", "TASL", "L&T", "Larsen & Toubro",
				"Mahindra Defense", "Kalyani Group", "Bharat Forge",
				"Reliance Defence", "Adani Defence",
			},
			Space: []string{
				"ISRO", "Skyroot", "Agnikul", "Pixxel", "Bellatrix",
				"Dhruva Space", "Astrome", "Antrix", "NSIL", "Kawa Space",
				"Satellogic India",
			},
		},
		Fetch: FetchConfig{
			Timeout:           12 * time.Second,
			MaxAttempts:       3,
			BaseDelay:         500 * time.Millisecond,
			MaxDelay:          5 * time.Second,
			RequestsPerSecond: 2,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
				"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
			},
		},
		Harvest: HarvestConfig{
			MaxEntriesPerFeed: 10,
			Concurrency:       4,
			RunTimeout:        10 * time.Minute,
			MaxContentLength:  4000,
		},
		Classifier: ClassifierConfig{
			LenientExclusion: false,
		},
		Dedupe: DedupeConfig{
			Key: KeyTitlePrefix,
		},
		Search: SearchConfig{
			Enabled: false,
			Terms: []string{
				"India ISRO space mission launch",
				"Indian defense HAL DRDO contract deal",
				"India military procurement defense export",
				"Indian space startup Skyroot Agnikul funding",
			},
			MaxResultsPerTerm: 3,
		},
	}
}
