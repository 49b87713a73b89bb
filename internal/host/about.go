package host

const (
	ProductName = "Intuition Engine"
	Copyright   = "(c) 2024 - 2026 Zayn Otley"
	ProjectURL  = "https://github.com/intuitionamiga/IntuitionEngine"
	Description = "A modern 32-bit reimagining of the Commodore, Atari and Sinclair 8-bit home computers."
)

// AboutMessage is the statically embedded About text used when the engine
// does not supply its own.
const AboutMessage = ProductName + "\n" +
	Copyright + "\n\n" +
	ProjectURL + "\n\n" +
	Description
