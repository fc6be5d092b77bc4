// Command mysticons submits a single mysticons transaction per invocation.
//
// Without a command it registers the Mysticon display. Commands are
// mintMysticon, updateMysticonPowerLevel, attachCreature, lockMysticon and
// burnMysticon; the last four take the mysticon object id as their final
// argument, after any command flags.
// Configuration comes from flags, the environment or a .env file.
package main
