package fallback

// Inline placeholders are self-contained SVG documents. They are servable
// without any I/O, which is what guarantees chain termination.

var placeholderScene = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="640" height="360" viewBox="0 0 640 360">
  <rect width="640" height="360" fill="#1b2838"/>
  <text x="320" y="172" text-anchor="middle" fill="#8fa3b8" font-family="sans-serif" font-size="20">Scene unavailable</text>
  <text x="320" y="204" text-anchor="middle" fill="#5c7186" font-family="sans-serif" font-size="14">The investigation continues offline</text>
</svg>`)

var placeholderPortrait = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="256" height="256" viewBox="0 0 256 256">
  <rect width="256" height="256" fill="#2a2438"/>
  <circle cx="128" cy="96" r="44" fill="#4a4060"/>
  <path d="M48 232c0-44 36-72 80-72s80 28 80 72" fill="#4a4060"/>
</svg>`)

var placeholderCover = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="480" height="270" viewBox="0 0 480 270">
  <rect width="480" height="270" fill="#10222e"/>
  <text x="240" y="140" text-anchor="middle" fill="#7d93a8" font-family="sans-serif" font-size="22">Where in the World?</text>
</svg>`)

var placeholderMap = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="512" height="288" viewBox="0 0 512 288">
  <rect width="512" height="288" fill="#142a1e"/>
  <text x="256" y="148" text-anchor="middle" fill="#7ba388" font-family="sans-serif" font-size="18">Map unavailable</text>
</svg>`)

var placeholderGeneric = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="128" height="128" viewBox="0 0 128 128">
  <rect width="128" height="128" fill="#303030"/>
  <text x="64" y="70" text-anchor="middle" fill="#909090" font-family="sans-serif" font-size="14">?</text>
</svg>`)
