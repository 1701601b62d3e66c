package constant

// AsciiArtLogo is the banner printed above the root command help.
const AsciiArtLogo = `
               _       _
  _ __ ___  __| |_ __ | | __ _ _   _
 | '__/ _ \/ _ \ | '_ \| |/ _' | | | |
 | | |  __/  __/ | |_) | | (_| | |_| |
 |_|  \___|\___|_| .__/|_|\__,_|\__, |
                 |_|            |___/`
