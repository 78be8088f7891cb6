package game

import game_constants "Polashi/constants/game"

// Character is a hidden role card. The JSON shape matches what the client's
// IdentityCard renders.
type Character struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Team        string `json:"team"`
}

// NawabCharacters is the loyalist half of the pool (green side).
var NawabCharacters = []Character{
	{ID: 1, Name: "Siraj-ud-Daulah", Description: "The last independent Nawab of Bengal. The throne is yours to lose.", Color: "#1b4332", Team: game_constants.TeamNawabs},
	{ID: 2, Name: "Mir Madan", Description: "Commander of the vanguard. You would rather die at Plassey than bow.", Color: "#1b4332", Team: game_constants.TeamNawabs},
	{ID: 3, Name: "Mohanlal", Description: "The Nawab's most trusted diwan. Loyal to the end.", Color: "#1b4332", Team: game_constants.TeamNawabs},
	{ID: 4, Name: "Sinfray", Description: "French artillery officer. Your guns are the Nawab's last honest allies.", Color: "#1b4332", Team: game_constants.TeamNawabs},
	{ID: 5, Name: "Bahadur Ali Khan", Description: "Keeper of the Nawab's household guard. You trust no courtier.", Color: "#1b4332", Team: game_constants.TeamNawabs},
	{ID: 6, Name: "Nabakrishna Deb", Description: "A sharp-eyed clerk of Murshidabad. You hear every whisper in the bazaar.", Color: "#1b4332", Team: game_constants.TeamNawabs},
}

// EICCharacters is the conspirator half of the pool (red side).
var EICCharacters = []Character{
	{ID: 7, Name: "Robert Clive", Description: "Colonel of the Company. Bengal will be bought before it is fought.", Color: "#7b1113", Team: game_constants.TeamEIC},
	{ID: 8, Name: "Mir Jafar", Description: "Commander of the Nawab's army, and the Company's secret crown-in-waiting.", Color: "#7b1113", Team: game_constants.TeamEIC},
	{ID: 9, Name: "Jagat Seth", Description: "Banker of the world. Every side of this war owes you money.", Color: "#7b1113", Team: game_constants.TeamEIC},
	{ID: 10, Name: "Omichund", Description: "Merchant and go-between. You sell secrets in both directions.", Color: "#7b1113", Team: game_constants.TeamEIC},
}

// CharacterByID looks a character up across both pools.
func CharacterByID(id int) (Character, bool) {
	for _, c := range NawabCharacters {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range EICCharacters {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}
