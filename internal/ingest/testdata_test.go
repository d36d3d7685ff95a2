package ingest

const samplePGN = `[Event "Rated Blitz game"]
[Site "https://lichess.org/fool0001"]
[White "alice"]
[Black "bob"]
[Result "0-1"]
[WhiteElo "1500"]
[BlackElo "?"]
[Termination "Normal"]

1. f3 e5 2. g4 Qh4# 0-1

[Event "Rated Bullet game"]
[Site "https://lichess.org/bot00002"]
[White "carol"]
[Black "stockfish"]
[BlackTitle "BOT"]
[Result "1-0"]
[Termination "Normal"]

1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0

[Event "Rated Classical game"]
[Site "https://lichess.org/time0003"]
[White "dave"]
[Black "erin"]
[WhiteTitle "FM"]
[Result "1-0"]
[Termination "Time forfeit"]

1. d4 { a comment } d5 (1... Nf6 2. c4) 2. c4 1-0

[Event "Rated Blitz game"]
[Site "https://lichess.org/aban0004"]
[White "frank"]
[Black "grace"]
[Result "0-1"]
[Termination "Abandoned"]

1. e4 0-1
`
