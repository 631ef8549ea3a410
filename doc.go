// Package kenburns is a Ken Burns slideshow engine for [Ebitengine].
//
// For every image it shows, kenburns plans a slow camera move (a pan, with a
// fixed zoom and rotation) that stays inside the picture, travels a
// meaningful distance, moves along the image's orientation and favours
// visually busy regions. The move is animated, and a black curtain fades in
// and out around each image.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	src, _ := kenburns.NewDirSource("photos", true)
//	show, _ := kenburns.NewShow(kenburns.DefaultConfig(), src)
//	kenburns.Run(show, kenburns.RunConfig{Title: "Slideshow"})
//
// For full control, embed a [Show] in your own [ebiten.Game] and call
// [Show.Update] and [Show.Draw] directly, or drive a [ShowScheduler] against
// your own [Presentation] and [Overlay].
//
// # Planning
//
// A [PathPlanner] draws candidate [CameraPath] values from a
// [PathGenerator] and scores them with a [PathEvaluator]. The default
// generator, [RandomPathGenerator], draws a quantised angle and a zoom biased
// towards 0 and 1, then two centres from the region where the view stays
// inside the image. The default evaluator is a [WeightedScorePathEvaluator]
// combining [InsidenessEvaluator], [DistanceEvaluator], [AngleEvaluator] and
// [EntropyEvaluator]. Any component returning [Reject] vetoes the path.
//
// # Scheduling
//
// [ShowScheduler] runs the planner on a background goroutine while the
// current image pans, then hands the result to the tick loop, which is the
// only place presentation state changes. Pausing freezes the camera; a
// search already in flight completes and its result is used on resume.
//
// # Configuration
//
// [Config] loads from YAML with [LoadConfig] and persists between runs via
// [SettingsStore]. Setters validate their input and return errors wrapping
// [ErrInvalidConfig].
//
// # ECS integration
//
// Lifecycle events ([ShowEvent]) can be forwarded to a [Donburi] world with
// the adapter in kenburns/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package kenburns
