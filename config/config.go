package config

// Playo listing API
const PLAYO_BASE_URL = "https://api.playo.io"
const PLAYO_LIST_ENDPOINT = "/activity-public/list/location"

// Groq (OpenAI-compatible) API used for natural-language time parsing
const GROQ_BASE_URL = "https://api.groq.com/openai/v1"
const GROQ_MODEL = "llama3-70b-8192"

// Search defaults (Cubbon Park area, Bengaluru)
const DEFAULT_LAT = 12.9783692
const DEFAULT_LNG = 77.6408356
const DEFAULT_RADIUS_KM = 5
const DEFAULT_SPORT_ID = "SP5" // badminton
const DEFAULT_TIMEZONE = "Asia/Kolkata"

// Display
const MAX_RESULTS = 10

// Station reference data
const STATIONS_FILE = "metro_stations.json"
